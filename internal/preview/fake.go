package preview

import "fmt"

// Fake artifacts used when no backend base URL is configured. Image URLs
// point at a public placeholder service so pages still render content.

const fakePageCount = 2

func fakeResumeImages(sessionID string, filenames []string) map[string][]string {
	images := make(map[string][]string, len(filenames))
	for _, fn := range filenames {
		images[fn] = fakePages(sessionID, fn)
	}
	return images
}

func fakeCoverImages(sessionID, filename string) []string {
	return fakePages(sessionID, filename)
}

func fakePages(sessionID, filename string) []string {
	pages := make([]string, 0, fakePageCount)
	for i := 1; i <= fakePageCount; i++ {
		pages = append(pages, fmt.Sprintf("https://placehold.co/794x1123/png?text=%s+%s+p%d", sessionID, filename, i))
	}
	return pages
}

// fakePDF returns a minimal but well-formed PDF so downloads succeed
// end to end in development.
func fakePDF(sessionID, filename string) []byte {
	body := fmt.Sprintf("%%PDF-1.4\n%% %s %s\n1 0 obj<</Type/Catalog/Pages 2 0 R>>endobj\n2 0 obj<</Type/Pages/Kids[3 0 R]/Count 1>>endobj\n3 0 obj<</Type/Page/Parent 2 0 R/MediaBox[0 0 595 842]>>endobj\ntrailer<</Root 1 0 R>>\n%%%%EOF\n", sessionID, filename)
	return []byte(body)
}

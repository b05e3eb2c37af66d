// Package export persists downloaded chapter pages into one of several
// output containers: a directory of image files, a zip comic archive,
// or a multi-page PDF document.
//
// # Contract
//
// All backends share one contract and one naming scheme. The caller
// constructs an exporter for a (title, chapter) pair, feeds it pages in
// order, and closes it:
//
//	exp, err := export.New("cbz", export.Options{
//	    Destination: "/manga",
//	    Title:       title,
//	    Chapter:     chapter,
//	    NextChapter: next, // used for extra-chapter numbering
//	})
//	if err != nil {
//	    return err
//	}
//	for _, page := range pages {
//	    if exp.SkipImage(page.Index) {
//	        continue
//	    }
//	    if err := exp.AddImage(page.Data, page.Index); err != nil {
//	        return err
//	    }
//	}
//	return exp.Close()
//
// # Resume
//
// Re-running an export against a destination that already holds the
// chapter is a safe no-op. Raw mode resumes per page via file-exists
// checks; the archive and document backends skip the whole chapter,
// since their containers cannot be appended to once written.
//
// # Registry
//
// Backends self-register under a format name in their init functions.
// export.New fails on an unknown name before touching the filesystem,
// and export.Formats lists what is available.
package export

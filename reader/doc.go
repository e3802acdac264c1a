// Package reader parses DWARF unit headers and record trees from any
// objaccess.Access.
//
// # Basic Usage
//
//	sess, err := reader.Open(objaccess.NewStoreAdapter(store))
//	if err != nil {
//	    return err
//	}
//	defer sess.Finish()
//
//	for {
//	    hdr, err := sess.NextUnit(true)
//	    if errors.Is(err, errs.ErrEndOfData) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//
//	    root, err := sess.Root()
//	    if err != nil {
//	        return err
//	    }
//
//	    err = reader.Walk(root, func(rec *reader.Record, depth int) error {
//	        fmt.Println(depth, rec.Tag)
//	        return nil
//	    })
//	}
//
// # Lifetime
//
// Records and the attribute slices they hand out live in a per-unit arena.
// The arena is returned to a pool when the next unit is opened, when Root
// fails, and when the session finishes. A record used after that reports
// errs.ErrRecordReleased.
//
// # Thread Safety
//
// A Session is not safe for concurrent use. Several sessions may share one
// Access.
package reader

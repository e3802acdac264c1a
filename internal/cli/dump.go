package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/memdwarf/dw"
	"github.com/arloliu/memdwarf/errs"
	"github.com/arloliu/memdwarf/inspect"
	"github.com/arloliu/memdwarf/internal/pool"
	"github.com/arloliu/memdwarf/reader"
)

// DumpOptions selects what Dump prints.
type DumpOptions struct {
	// Types also dumps the .debug_types area after .debug_info.
	Types bool
	// MaxUnits limits the number of units dumped per area. 0 means no limit.
	MaxUnits int
}

// Dump prints the header and record tree of every unit the session holds.
func Dump(w io.Writer, sess *reader.Session, opts DumpOptions) error {
	if err := dumpArea(w, sess, true, opts.MaxUnits); err != nil {
		return err
	}
	if opts.Types {
		return dumpArea(w, sess, false, opts.MaxUnits)
	}

	return nil
}

func dumpArea(w io.Writer, sess *reader.Session, isInfo bool, maxUnits int) error {
	buf := pool.GetUnitBuffer()
	defer pool.PutUnitBuffer(buf)

	for n := 0; maxUnits == 0 || n < maxUnits; n++ {
		hdr, err := sess.NextUnit(isInfo)
		if errors.Is(err, errs.ErrEndOfData) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("next unit header: %w", err)
		}

		err = dumpUnit(buf, sess, hdr)
		if _, werr := buf.WriteTo(w); werr != nil {
			return fmt.Errorf("write output: %w", werr)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// dumpUnit renders the open unit into buf.
func dumpUnit(buf *pool.ByteBuffer, sess *reader.Session, hdr reader.UnitHeader) error {
	printHeader(buf, hdr)

	root, err := sess.Root()
	if err != nil {
		return fmt.Errorf("unit root record at 0x%x: %w", hdr.Offset, err)
	}

	return reader.Walk(root, func(rec *reader.Record, depth int) error {
		return printRecord(buf, sess, rec, depth)
	})
}

func printHeader(w io.Writer, hdr reader.UnitHeader) {
	fmt.Fprintf(w, "CU header length..........0x%x\n", hdr.UnitLength)
	fmt.Fprintf(w, "Version stamp.............%d\n", hdr.Version)
	fmt.Fprintf(w, "Address size .............%d\n", hdr.AddressSize)
	fmt.Fprintf(w, "Offset size...............%d\n", hdr.OffsetSize)
	fmt.Fprintf(w, "Next cu header offset.....0x%x\n", hdr.NextUnitOffset)

	if !hdr.IsInfo || hdr.UnitType == dw.UnitTypeType || hdr.UnitType == dw.UnitTypeSplitType {
		fmt.Fprintf(w, "Type signature............0x%x\n", hdr.Signature)
		fmt.Fprintf(w, "Type offset...............0x%x\n", hdr.TypeOffset)
	}
}

func printRecord(w io.Writer, strs inspect.StringResolver, rec *reader.Record, depth int) error {
	desc, err := inspect.DescribeRecord(strs, rec)
	if err != nil {
		return fmt.Errorf("print record at 0x%x: %w", rec.Offset, err)
	}

	fmt.Fprintf(w, "%3d:  Die: %s\n", depth, desc.Tag)
	for i, attr := range desc.Attributes {
		if attr.HasValue {
			fmt.Fprintf(w, "  [%2d] Attr: %-15s  Form: %-15s %s\n", i, attr.Name, attr.Form, attr.Value)
			continue
		}
		fmt.Fprintf(w, "  [%2d] Attr: %-15s  Form: %-15s\n", i, attr.Name, attr.Form)
	}

	return nil
}

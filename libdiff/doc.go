// Package libdiff computes differences between LTSV documents.
//
// # Usage
//
//	changes := libdiff.Documents(before, after)
//	for _, c := range changes {
//	    switch c.Op {
//	    case libdiff.Delete, libdiff.Insert, libdiff.Modify:
//	        fmt.Println(c)
//	    }
//	}
//
// Records are compared by their fields, so two lines differing only in
// dropped malformed segments are equal.  A run of deleted records directly
// followed by a run of inserted ones is paired up position by position
// into [Modify] changes carrying per-field differences.
//
// # Related Packages
//
//   - github.com/signadot/ltsv-format/go-ltsv/ir - Document and Record
package libdiff

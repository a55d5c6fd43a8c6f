// Package walk discovers the import graph of a module and aggregates the
// measured weight of every file in it.
//
// A walk starts at a root file, measures it, resolves each of its import
// specifiers against the file's own directory, and queues every file not yet
// seen. Each file is measured exactly once no matter how many files import it,
// and import cycles terminate because identities already queued, in flight, or
// visited are never queued again.
//
// # Ordering
//
// The frontier is a FIFO queue, so traversal is breadth-first. With more than
// one worker the order in which measurements complete is not fixed, so the
// [Report] is ordered by replaying the recorded dependencies breadth-first from
// the root after the walk. The same input always yields the same report.
//
// # Errors
//
// The first error aborts the walk and no report is produced. Errors carry a
// [github.com/matzehuels/heft/pkg/errors] code and the offending file.
//
// # Totals
//
// [Report.TotalLength] sums raw source lengths and [Report.TotalSize] sums the
// compressed sizes. [Report.BundledSize] compresses all minified outputs as
// one stream, which is smaller than TotalSize because the compressor can share
// context across files.
package walk

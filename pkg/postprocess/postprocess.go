/*
Package postprocess rewrites the standard output of the LLVM binary-analysis tools
into a more readable form. Every transform is a pure function over the complete
output; input a transform does not understand is returned unchanged.
*/
package postprocess

// A Transform rewrites a tool's complete standard output.
type Transform func(stdout []byte) []byte

// Identity returns its input unchanged. It is used for tools whose output is data
// rather than a report.
func Identity(stdout []byte) []byte {
	return stdout
}

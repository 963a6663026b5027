package cuboid

import _ "embed"

// EntryPoint is the kernel entry extracted from the compiled program. The
// kernel takes exactly four buffer arguments: a, b, c inputs and the area
// result, one worker per element.
const EntryPoint = "cuboidArea"

//go:embed kernel.okl
var kernelSource string

// KernelSource returns the embedded kernel source text. The element count is
// injected at build time through the program preamble.
func KernelSource() string {
	return kernelSource
}

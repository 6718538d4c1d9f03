// Package scriptfix rewrites decompiled C# sources that the editor refuses to
// compile.
//
// A Transform pairs a regular expression with its replacement. PatchTree
// applies a list of transforms to every matching file below a root and only
// touches files whose contents actually change, so unaffected sources keep
// their bytes and modification times.
package scriptfix

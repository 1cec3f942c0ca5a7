package star

// Export some internal functions for testing

var SplitLine = splitLine
var Unquote = unquote
var SplitLines = splitLines

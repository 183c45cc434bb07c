package xmltext

const (
	// ============================================================================
	// Markup Delimiters
	// ============================================================================

	// CommentOpen starts a comment passthrough
	CommentOpen = "<!--"

	// CommentClose ends a comment passthrough
	CommentClose = "-->"

	// ProcInstOpen starts a processing instruction passthrough
	ProcInstOpen = "<?"

	// ProcInstClose ends a processing instruction passthrough
	ProcInstClose = "?>"

	// DirectiveOpen starts a directive passthrough (<!DOCTYPE ...>)
	DirectiveOpen = "<!"

	// DirectiveClose ends a directive passthrough
	DirectiveClose = ">"

	// NameSpaceSeparator joins a prefix and local name; prefixes are kept
	// verbatim since namespaces are not interpreted.
	NameSpaceSeparator = ":"

	// ============================================================================
	// Encoding Names
	// ============================================================================

	// EncodingUTF8 is the identifier for UTF-8 encoding
	EncodingUTF8 = "UTF-8"

	// EncodingUTF16 is the generic UTF-16 label used in XML declarations
	EncodingUTF16 = "UTF-16"

	// EncodingUTF16LE is the identifier for UTF-16 little-endian encoding
	EncodingUTF16LE = "UTF-16LE"

	// EncodingUTF16BE is the identifier for UTF-16 big-endian encoding
	EncodingUTF16BE = "UTF-16BE"

	// ============================================================================
	// Buffer Sizes
	// ============================================================================

	// ReaderBufferSize is the read-ahead buffer used when streaming input
	ReaderBufferSize = 4 * 1024

	// bomPeekSize is the number of bytes sniffed for a byte order mark
	bomPeekSize = 3
)

var (
	// UTF8BOM is the byte order mark for UTF-8
	UTF8BOM = []byte{0xEF, 0xBB, 0xBF}

	// UTF16LEBOM is the byte order mark for UTF-16 little-endian
	UTF16LEBOM = []byte{0xFF, 0xFE}

	// UTF16BEBOM is the byte order mark for UTF-16 big-endian
	UTF16BEBOM = []byte{0xFE, 0xFF}
)

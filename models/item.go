package models

// ItemType discriminates the ContentItem union. The formatter switches on
// this value; adding a new type is a coordinated change with the formatter.
type ItemType string

const (
	ItemText        ItemType = "text"
	ItemCodeBlock   ItemType = "code_block"
	ItemImage       ItemType = "image"
	ItemInteractive ItemType = "interactive_block"
	ItemFile        ItemType = "file"
)

// ContentItem is one typed unit of extracted content. Exactly the fields
// relevant to its Type are populated; ordering within a turn matches
// document order.
type ContentItem struct {
	Type ItemType `json:"type"`

	// Content holds Markdown-ready prose (text) or raw code text
	// (code_block). Trailing whitespace is trimmed for code; leading
	// whitespace within lines is preserved.
	Content string `json:"content,omitempty"`

	// Language is the detected code-block language. Empty means no code
	// block; code blocks with undetectable language carry "text".
	Language string `json:"language,omitempty"`

	// Src is the absolute image URL (image).
	Src string `json:"src,omitempty"`

	// Alt is the image alt attribute (image).
	Alt string `json:"alt,omitempty"`

	// ExtractedContent is the caption/alt fallback used as the Markdown
	// image description (image), or extracted file text (file).
	ExtractedContent string `json:"extracted_content,omitempty"`

	// Title and ArtifactType describe an interactive (artifact/canvas)
	// block stub. The artifact body is never extracted, so there is no
	// code/language payload for this type.
	Title        string `json:"title,omitempty"`
	ArtifactType string `json:"artifact_type,omitempty"`

	// FileName, FileType and IsPreviewOnly describe a user-uploaded file.
	FileName      string `json:"file_name,omitempty"`
	FileType      string `json:"file_type,omitempty"`
	IsPreviewOnly bool   `json:"is_preview_only,omitempty"`
}

// NewTextItem builds a text ContentItem.
func NewTextItem(content string) ContentItem {
	return ContentItem{Type: ItemText, Content: content}
}

// NewCodeBlockItem builds a code_block ContentItem.
func NewCodeBlockItem(language, content string) ContentItem {
	return ContentItem{Type: ItemCodeBlock, Language: language, Content: content}
}

// NewImageItem builds an image ContentItem.
func NewImageItem(src, alt, extracted string) ContentItem {
	return ContentItem{Type: ItemImage, Src: src, Alt: alt, ExtractedContent: extracted}
}

// NewInteractiveItem builds an interactive_block stub.
func NewInteractiveItem(title, artifactType string) ContentItem {
	return ContentItem{Type: ItemInteractive, Title: title, ArtifactType: artifactType}
}

// NewFileItem builds a file ContentItem for user-uploaded file metadata.
func NewFileItem(name, fileType string, previewOnly bool, extracted string) ContentItem {
	return ContentItem{
		Type:             ItemFile,
		FileName:         name,
		FileType:         fileType,
		IsPreviewOnly:    previewOnly,
		ExtractedContent: extracted,
	}
}

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation.
//
// Assistant turns carry the structured item sequence. User turns carry a
// single combined Markdown string plus uploaded image/file items, matching
// how chat UIs render user input (plain text with attachments, never rich
// block structure).
type Turn struct {
	Role Role `json:"role"`

	// Items is the ordered content sequence for assistant turns.
	Items []ContentItem `json:"items,omitempty"`

	// Text is the combined Markdown for user turns.
	Text string `json:"text,omitempty"`

	// Images and Files are the user turn attachments.
	Images []ContentItem `json:"images,omitempty"`
	Files  []ContentItem `json:"files,omitempty"`
}

// Conversation is the full ordered extraction result for one page.
type Conversation struct {
	Platform string `json:"platform"`
	Title    string `json:"title,omitempty"`
	Turns    []Turn `json:"turns"`
}

package topics

// Renderer formats topic content for the terminal
type Renderer interface {
	// Render takes raw content and the topic's file extension
	Render(content string, ext string) string
}

// PlainRenderer returns content as-is
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}

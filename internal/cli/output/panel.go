package output

import "strings"

// Section is a titled block of a Panel.
type Section struct {
	Title string
	Body  string
}

// Panel writes titled sections inside a bordered box in text mode, and as
// headed code blocks in markdown mode.
func (r *Renderer) Panel(title string, sections []Section) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatHeader(2, title))
		for _, s := range sections {
			r.Println("")
			r.Println(FormatHeader(3, s.Title))
			r.Println("")
			r.Println("```")
			r.Println(s.Body)
			r.Println("```")
		}
		r.Println("")
		return
	}

	blocks := make([]string, 0, len(sections))
	for _, s := range sections {
		blocks = append(blocks, r.styles.Section.Render(s.Title)+"\n"+s.Body)
	}
	r.Println(r.styles.Header1.Render(title))
	r.Println(r.styles.Panel.Render(strings.Join(blocks, "\n\n")))
}

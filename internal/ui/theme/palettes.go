package theme

import "github.com/charmbracelet/lipgloss"

func c(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func init() {
	Register(DefaultName, Palette{
		Primary:   c("#5A3FC0", "#875FFF"),
		Secondary: c("#0087AF", "#00AFFF"),
		Accent:    c("#AF8700", "#FFD700"),
		Error:     c("#D70000", "#FF5F5F"),
		Warning:   c("#D75F00", "#FF8700"),
		Success:   c("#008700", "#87FF00"),
		Text:      c("#1C1C1C", "#EEEEEE"),
		Muted:     c("#6C6C6C", "#949494"),
		Border:    c("#8A8A8A", "#585858"),
	})

	// https://draculatheme.com/contribute
	Register("dracula", Palette{
		Primary:   c("#7E57C2", "#BD93F9"),
		Secondary: c("#0097A7", "#8BE9FD"),
		Accent:    c("#F9A825", "#F1FA8C"),
		Error:     c("#D32F2F", "#FF5555"),
		Warning:   c("#EF6C00", "#FFB86C"),
		Success:   c("#388E3C", "#50FA7B"),
		Text:      c("#282A36", "#F8F8F2"),
		Muted:     c("#6272A4", "#6272A4"),
		Border:    c("#BDBDBD", "#44475A"),
	})

	// https://www.nordtheme.com/docs/colors-and-palettes
	Register("nord", Palette{
		Primary:   c("#5E81AC", "#88C0D0"),
		Secondary: c("#5E81AC", "#81A1C1"),
		Accent:    c("#B48EAD", "#EBCB8B"),
		Error:     c("#BF616A", "#BF616A"),
		Warning:   c("#D08770", "#D08770"),
		Success:   c("#A3BE8C", "#A3BE8C"),
		Text:      c("#2E3440", "#ECEFF4"),
		Muted:     c("#4C566A", "#D8DEE9"),
		Border:    c("#D8DEE9", "#4C566A"),
	})

	Register("gruvbox", Palette{
		Primary:   c("#076678", "#83A598"),
		Secondary: c("#8F3F71", "#D3869B"),
		Accent:    c("#B57614", "#FABD2F"),
		Error:     c("#9D0006", "#FB4934"),
		Warning:   c("#AF3A03", "#FE8019"),
		Success:   c("#79740E", "#B8BB26"),
		Text:      c("#3C3836", "#EBDBB2"),
		Muted:     c("#7C6F64", "#A89984"),
		Border:    c("#BDAE93", "#504945"),
	})

	Register("solarized", Palette{
		Primary:   c("#268BD2", "#268BD2"),
		Secondary: c("#2AA198", "#2AA198"),
		Accent:    c("#B58900", "#B58900"),
		Error:     c("#DC322F", "#DC322F"),
		Warning:   c("#CB4B16", "#CB4B16"),
		Success:   c("#859900", "#859900"),
		Text:      c("#657B83", "#839496"),
		Muted:     c("#93A1A1", "#586E75"),
		Border:    c("#EEE8D5", "#073642"),
	})
}

package ui

import "github.com/charmbracelet/lipgloss"

// 16-color ANSI Dracula palette
var (
	DraculaBackground = lipgloss.AdaptiveColor{Light: "0", Dark: "0"}
	DraculaForeground = lipgloss.AdaptiveColor{Light: "255", Dark: "255"}
	DraculaPurple     = lipgloss.AdaptiveColor{Light: "5", Dark: "5"}
	DraculaPink       = lipgloss.AdaptiveColor{Light: "13", Dark: "13"}
	DraculaCyan       = lipgloss.AdaptiveColor{Light: "14", Dark: "14"}
	DraculaGreen      = lipgloss.AdaptiveColor{Light: "10", Dark: "10"}
	DraculaComment    = lipgloss.AdaptiveColor{Light: "7", Dark: "7"}
	DraculaOrange     = lipgloss.AdaptiveColor{Light: "3", Dark: "3"}
	DraculaRed        = lipgloss.AdaptiveColor{Light: "1", Dark: "1"}

	// Header
	HeaderStyle = lipgloss.NewStyle().
			Foreground(DraculaPink).
			Bold(true).
			Padding(0, 1)
	HeaderScrolledStyle = lipgloss.NewStyle().
				Foreground(DraculaBackground).
				Background(DraculaPink).
				Bold(true).
				Padding(0, 1)
	HeaderHintStyle = lipgloss.NewStyle().
			Foreground(DraculaComment)

	// Filter bar
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(DraculaPink).
			Bold(true).
			Underline(true).
			Padding(0, 1)
	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(DraculaComment).
				Padding(0, 1)

	// Sections
	HeroTitleStyle = lipgloss.NewStyle().
			Foreground(DraculaPink).
			Bold(true)
	HeroTaglineStyle = lipgloss.NewStyle().
				Foreground(DraculaCyan).
				Italic(true)
	StatNumberStyle = lipgloss.NewStyle().
			Foreground(DraculaGreen).
			Bold(true)
	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(DraculaPurple).
				Bold(true).
				MarginBottom(1)

	// Cards
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DraculaComment).
			Padding(0, 1).
			Width(cardWidth)
	SelectedCardStyle = CardStyle.
				BorderForeground(DraculaPink)
	CardBrandStyle = lipgloss.NewStyle().
			Foreground(DraculaComment)
	CardTitleStyle = lipgloss.NewStyle().
			Foreground(DraculaForeground).
			Bold(true)
	CardSpecStyle = lipgloss.NewStyle().
			Foreground(DraculaCyan)
	CardPriceStyle = lipgloss.NewStyle().
			Foreground(DraculaGreen).
			Bold(true)
	CardLinkStyle = lipgloss.NewStyle().
			Foreground(DraculaOrange)
	BadgeElectricStyle = lipgloss.NewStyle().
				Foreground(DraculaBackground).
				Background(DraculaGreen).
				Padding(0, 1)
	BadgeHybridStyle = lipgloss.NewStyle().
				Foreground(DraculaBackground).
				Background(DraculaCyan).
				Padding(0, 1)

	LoadMoreStyle = lipgloss.NewStyle().
			Foreground(DraculaPink).
			Border(lipgloss.NormalBorder()).
			BorderForeground(DraculaPink).
			Padding(0, 2)

	// Panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DraculaComment).
			Padding(1, 2)
	PanelErrorStyle = PanelStyle.
			BorderForeground(DraculaRed)
	PanelHeadingStyle = lipgloss.NewStyle().
				Foreground(DraculaForeground).
				Bold(true)

	// Nav drawer
	NavStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(DraculaPurple).
			Padding(1, 4)
	NavItemStyle = lipgloss.NewStyle().
			Foreground(DraculaForeground)
	NavItemActiveStyle = lipgloss.NewStyle().
				Foreground(DraculaPink).
				Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(DraculaComment)
	ErrorStyle = lipgloss.NewStyle().
			Foreground(DraculaRed)

	// Help
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(DraculaPink).
			Bold(true)
	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DraculaForeground)
)

package ui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nordiskauto/bilvisning/chrome"
	"github.com/nordiskauto/bilvisning/types"
)

// Message types for async operations

type feedLoadedMsg struct {
	feed types.Feed
	err  error
}

type counterTickMsg struct {
	index int
}

type scrollFrameMsg struct{}

type linkOpenedMsg struct {
	url string
	err error
}

type linkCopiedMsg struct {
	url string
	err error
}

// loadFeed returns a tea.Cmd that loads the listings once.
func loadFeed(source types.ListingSource) tea.Cmd {
	return func() tea.Msg {
		feed, err := source.Load(context.Background())
		return feedLoadedMsg{feed: feed, err: err}
	}
}

func tickCounter(index int) tea.Cmd {
	return tea.Tick(chrome.CounterInterval, func(time.Time) tea.Msg {
		return counterTickMsg{index: index}
	})
}

func nextScrollFrame() tea.Cmd {
	return tea.Tick(time.Second/chrome.DefaultFPS, func(time.Time) tea.Msg {
		return scrollFrameMsg{}
	})
}

func openLink(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return linkOpenedMsg{url: url, err: open(url)}
	}
}

func copyLink(write func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return linkCopiedMsg{url: url, err: write(url)}
	}
}

// openBrowser opens url in the platform's default browser.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}

func writeClipboard(text string) error {
	return clipboard.WriteAll(text)
}

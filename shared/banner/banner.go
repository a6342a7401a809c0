package banner

import (
	"fmt"
	"os"
	"strings"

	"github.com/thirukguru/relnotes/shared/ansi"
	"github.com/thirukguru/relnotes/shared/console"
	"golang.org/x/term"
)

const bannerColorEnv = "RELNOTES_BANNER_COLOR"

var bannerColors = map[string]string{
	"orange": "\x1b[38;2;255;153;0m",
	"blue":   "\x1b[38;2;24;119;242m",
	"green":  "\x1b[38;2;30;215;96m",
	"red":    "\x1b[38;2;229;9;20m",
	"purple": "\x1b[38;2;145;70;255m",
}

const (
	bannerColorDefault        = "orange"
	bannerColorBlueBackground = "green"
)

var titleLines = []string{
	"██████╗  ███████╗ ██╗      ███╗   ██╗  ██████╗  ████████╗ ███████╗ ███████╗",
	"██╔══██╗ ██╔════╝ ██║      ████╗  ██║ ██╔═══██╗ ╚══██╔══╝ ██╔════╝ ██╔════╝",
	"██████╔╝ █████╗   ██║      ██╔██╗ ██║ ██║   ██║    ██║    █████╗   ███████╗",
	"██╔══██╗ ██╔══╝   ██║      ██║╚██╗██║ ██║   ██║    ██║    ██╔══╝   ╚════██║",
	"██║  ██║ ███████╗ ███████╗ ██║ ╚████║ ╚██████╔╝    ██║    ███████╗ ███████║",
	"╚═╝  ╚═╝ ╚══════╝ ╚══════╝ ╚═╝  ╚═══╝  ╚═════╝     ╚═╝    ╚══════╝ ╚══════╝",
}

func printCenteredLines(lines []string, width int) {
	for _, line := range lines {
		pad := 0
		if width > len([]rune(line)) {
			pad = (width - len([]rune(line))) / 2
		}
		if pad > 0 {
			fmt.Print(strings.Repeat(" ", pad))
		}
		fmt.Println(line)
	}
}

func bannerColor() string {
	if raw := strings.TrimSpace(os.Getenv(bannerColorEnv)); raw != "" {
		if color, ok := bannerColors[strings.ToLower(raw)]; ok {
			return color
		}
	}
	if console.IsBlueBackground() {
		return bannerColors[bannerColorBlueBackground]
	}
	return bannerColors[bannerColorDefault]
}

// DrawBannerTitle prints the application title banner to stdout.
func DrawBannerTitle() {
	ansi.EnableANSI()

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}

	fmt.Print(bannerColor())
	printCenteredLines(titleLines, width)
	fmt.Print("\x1b[0m")
}

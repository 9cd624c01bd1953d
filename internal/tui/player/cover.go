package player

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"
)

// coverRows возвращает высоту обложки в строках: один символ "▀" покрывает два пикселя
func coverRows(width int) int {
	return max(width/2, 1)
}

// renderCover рисует обложку полублоками: верхний пиксель цветом текста, нижний цветом фона
func renderCover(img image.Image, width int) string {
	rows := coverRows(width)
	resized := resize.Resize(uint(width), uint(rows*2), img, resize.Lanczos3)
	b := resized.Bounds()

	lines := make([]string, 0, rows)
	for y := 0; y < rows*2; y += 2 {
		var sb strings.Builder
		for x := 0; x < width; x++ {
			top := hexColor(resized.At(b.Min.X+x, b.Min.Y+y))
			bottom := hexColor(resized.At(b.Min.X+x, b.Min.Y+y+1))
			sb.WriteString(lipgloss.NewStyle().Foreground(top).Background(bottom).Render("▀"))
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

// placeholderCover рисует рамку с нотой для трека без обложки
func placeholderCover(width int) string {
	return coverPlaceholderStyle.
		Width(max(width-2, 1)).
		Height(max(coverRows(width)-2, 1)).
		Render("♪")
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

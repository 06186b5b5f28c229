package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strings"

	"github.com/park285/chess-match-tracker/internal/domain"
	"github.com/park285/chess-match-tracker/internal/util"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	chartWidth   = 640
	marginX      = 24
	headerHeight = 84
	rowHeight    = 48
	barHeight    = 14
	barGap       = 4
	barRadius    = 4
	labelWidth   = 150
	valueWidth   = 48
	footerHeight = 20
	barMaxWidth  = chartWidth - marginX*2 - labelWidth - valueWidth
)

const (
	backgroundHex = "#f8fafc"
	headerHex     = "#0f172a"
	trackHex      = "#e2e8f0"
	userBarHex    = "#10b981"
	opponentHex   = "#f43f5e"
)

var (
	headerText  = color.NRGBA{R: 236, G: 239, B: 255, A: 255}
	labelText   = color.NRGBA{R: 51, G: 65, B: 85, A: 255}
	mutedText   = color.NRGBA{R: 100, G: 116, B: 139, A: 255}
	userBarRGBA = color.NRGBA{R: 0x10, G: 0xb9, B: 0x81, A: 255}
	oppBarRGBA  = color.NRGBA{R: 0xf4, G: 0x3f, B: 0x5e, A: 255}
)

// Labels are the localized strings drawn on the chart.
type Labels struct {
	Title string // e.g. "Totale Punti (Io)"
	User  string
	Empty string
}

type ScoreboardRenderer interface {
	RenderPNG(ctx context.Context, total float64, stats []domain.OpponentStats) ([]byte, error)
}

type svgScoreboardRenderer struct {
	labels Labels
}

func NewScoreboardRenderer(labels Labels) ScoreboardRenderer {
	if strings.TrimSpace(labels.Title) == "" {
		labels.Title = "Total"
	}
	if strings.TrimSpace(labels.User) == "" {
		labels.User = "Me"
	}
	return &svgScoreboardRenderer{labels: labels}
}

// ScoreboardPNG renders with default English labels.
func ScoreboardPNG(ctx context.Context, total float64, stats []domain.OpponentStats) ([]byte, error) {
	return NewScoreboardRenderer(Labels{}).RenderPNG(ctx, total, stats)
}

// ChartHeight is the image height for n scoreboard rows.
func ChartHeight(n int) int {
	if n < 1 {
		n = 1
	}
	return headerHeight + n*rowHeight + footerHeight
}

// barRects returns the user and opponent bar rectangles for row i, scaled against maxPoints.
// A zero value yields an empty rectangle.
func barRects(i int, s domain.OpponentStats, maxPoints float64) (user, opp image.Rectangle) {
	x := marginX + labelWidth
	top := headerHeight + i*rowHeight + (rowHeight-2*barHeight-barGap)/2
	user = image.Rect(x, top, x+barWidth(s.TotalPoints, maxPoints), top+barHeight)
	oppTop := top + barHeight + barGap
	opp = image.Rect(x, oppTop, x+barWidth(s.OpponentPoints, maxPoints), oppTop+barHeight)
	return user, opp
}

func barWidth(v, maxPoints float64) int {
	if v <= 0 || maxPoints <= 0 {
		return 0
	}
	w := int(v / maxPoints * barMaxWidth)
	if w < 2 {
		w = 2
	}
	return w
}

func maxPoints(stats []domain.OpponentStats) float64 {
	m := 1.0
	for _, s := range stats {
		if s.TotalPoints > m {
			m = s.TotalPoints
		}
		if s.OpponentPoints > m {
			m = s.OpponentPoints
		}
	}
	return m
}

func (r *svgScoreboardRenderer) RenderPNG(ctx context.Context, total float64, stats []domain.OpponentStats) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	width, height := chartWidth, ChartHeight(len(stats))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, imagedraw.Src)

	if err := rasterizeSVG(img, chartSVG(width, height, stats)); err != nil {
		return nil, err
	}
	drawLabels(img, r.labels, total, stats)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return pngBuf.Bytes(), nil
}

// chartSVG lays out the background, header band, bar tracks and bars.
func chartSVG(width, height int, stats []domain.OpponentStats) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, width, height, width, height)
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, width, height, backgroundHex)
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, width, headerHeight-12, headerHex)

	maxP := maxPoints(stats)
	for i, s := range stats {
		user, opp := barRects(i, s, maxP)
		for _, rect := range []image.Rectangle{user, opp} {
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" rx="%d" ry="%d" fill="%s"/>`,
				rect.Min.X, rect.Min.Y, barMaxWidth, barHeight, barRadius, barRadius, trackHex)
		}
		writeBar(&b, user, userBarHex)
		writeBar(&b, opp, opponentHex)
	}
	b.WriteString(`</svg>`)
	return []byte(b.String())
}

func writeBar(b *strings.Builder, rect image.Rectangle, fill string) {
	if rect.Dx() <= 0 {
		return
	}
	radius := barRadius
	if rect.Dx() < radius*2 {
		radius = rect.Dx() / 2
	}
	fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="%d" rx="%d" ry="%d" fill="%s"/>`,
		rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy(), radius, radius, fill)
}

func rasterizeSVG(img *image.RGBA, svg []byte) error {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return fmt.Errorf("parse chart svg: %w", err)
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return nil
}

func drawLabels(img *image.RGBA, labels Labels, total float64, stats []domain.OpponentStats) {
	face := basicfont.Face7x13
	drawer := &font.Drawer{Dst: img, Face: face}
	ascent := face.Metrics().Ascent.Ceil()

	drawText(drawer, labels.Title, marginX, 28, headerText)
	drawText(drawer, util.FormatPoints(total), marginX, 28+ascent+10, headerText)

	if len(stats) == 0 {
		if labels.Empty != "" {
			drawText(drawer, labels.Empty, marginX, headerHeight+rowHeight/2+ascent/2, mutedText)
		}
		return
	}

	maxP := maxPoints(stats)
	valueX := marginX + labelWidth + barMaxWidth + 8
	for i, s := range stats {
		user, opp := barRects(i, s, maxP)
		name := truncateWithEllipsis(face, s.Name, labelWidth-12)
		drawText(drawer, name, marginX, user.Max.Y+barGap/2+ascent/2, labelText)
		drawText(drawer, util.FormatPoints(s.TotalPoints), valueX, user.Min.Y+ascent, userBarRGBA)
		drawText(drawer, util.FormatPoints(s.OpponentPoints), valueX, opp.Min.Y+ascent, oppBarRGBA)
	}
	legendY := ChartHeight(len(stats)) - 6
	drawText(drawer, labels.User, marginX+labelWidth, legendY, userBarRGBA)
}

func drawText(drawer *font.Drawer, text string, x, baseline int, clr color.Color) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	drawer.Src = image.NewUniform(clr)
	drawer.Dot = fixed.P(x, baseline)
	drawer.DrawString(text)
}

func truncateWithEllipsis(face font.Face, text string, maxWidth int) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || maxWidth <= 0 || face == nil {
		return trimmed
	}

	drawer := font.Drawer{Face: face}
	if drawer.MeasureString(trimmed).Round() <= maxWidth {
		return trimmed
	}

	ellipsis := "..."
	if drawer.MeasureString(ellipsis).Round() > maxWidth {
		return ""
	}

	runes := []rune(trimmed)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + ellipsis
		if drawer.MeasureString(candidate).Round() <= maxWidth {
			return candidate
		}
	}
	return ellipsis
}

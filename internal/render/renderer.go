package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"totem-quiz-bot/internal/domain"
	"totem-quiz-bot/internal/pkg/logger"
)

const (
	DetailWidth  = 800
	DetailHeight = 1000
	ShareSize    = 1080

	margin          = 50
	shareDescLimit  = 100
	defaultUserName = "Пользователь"

	titleText     = "Твое тотемное животное:"
	factsHeader   = "🐾 Интересные факты:"
	guardHeader   = "💝 О программе опеки:"
	signatureText = "Сгенерировано для %s"
	detailFooter  = "🐾 Московский зоопарк 🐾"
	shareCTA      = "🐾 Узнай больше о программе опеки!"
	shareFooter   = "Московский зоопарк"
)

var (
	colorBackground = color.RGBA{255, 255, 255, 255}
	colorText       = color.RGBA{0, 0, 0, 255}
	colorTitle      = color.RGBA{34, 139, 34, 255}
	colorSubtitle   = color.RGBA{70, 130, 180, 255}
	colorAccent     = color.RGBA{255, 140, 0, 255}
)

// Renderer draws result cards for catalog outcomes. The font is resolved once
// at construction; every render creates its own faces.
type Renderer struct {
	catalog *domain.Catalog
	font    *truetype.Font
	log     *logger.Logger
}

func NewRenderer(catalog *domain.Catalog, fontPath string, log *logger.Logger) (*Renderer, error) {
	f, source, err := loadFont(fontPath)
	if err != nil {
		return nil, err
	}
	if fontPath != "" && source == fallbackFontName {
		log.Warn("preferred font unavailable, using fallback", "path", fontPath, "fallback", fallbackFontName)
	}
	return &Renderer{catalog: catalog, font: f, log: log.With("component", "Renderer")}, nil
}

// RenderDetailCard draws the 800x1000 result card.
func (r *Renderer) RenderDetailCard(outcomeKey, displayName string) (domain.Artifact, error) {
	outcome, err := r.outcome(outcomeKey)
	if err != nil {
		return domain.Artifact{}, err
	}
	if displayName == "" {
		displayName = defaultUserName
	}

	title := face(r.font, 36)
	subtitle := face(r.font, 28)
	body := face(r.font, 24)

	dc := gg.NewContext(DetailWidth, DetailHeight)
	dc.SetColor(colorBackground)
	dc.Clear()

	dc.SetFontFace(title)
	dc.SetColor(colorTitle)
	drawCentered(dc, titleText, DetailWidth, 50)

	dc.SetFontFace(subtitle)
	dc.SetColor(colorSubtitle)
	drawCentered(dc, fmt.Sprintf("%s %s %s", outcome.Emoji, outcome.DisplayName, outcome.Emoji), DetailWidth, 120)

	wrapWidth := float64(DetailWidth - 2*margin)
	y := 200.0
	dc.SetFontFace(body)
	dc.SetColor(colorText)
	for _, line := range WrapText(outcome.Description, dc, wrapWidth) {
		drawLeft(dc, line, y)
		y += 30
	}

	sections := []struct{ header, text string }{
		{factsHeader, outcome.ExtraFacts},
		{guardHeader, outcome.GuardianInfo},
	}
	for _, s := range sections {
		y += 20
		dc.SetFontFace(subtitle)
		dc.SetColor(colorAccent)
		drawLeft(dc, s.header, y)
		y += 40

		dc.SetFontFace(body)
		dc.SetColor(colorText)
		for _, line := range WrapText(s.text, dc, wrapWidth) {
			drawLeft(dc, line, y)
			y += 25
		}
	}

	y += 30
	dc.SetColor(colorSubtitle)
	drawCentered(dc, fmt.Sprintf(signatureText, displayName), DetailWidth, y)

	y += 40
	dc.SetColor(colorTitle)
	drawCentered(dc, detailFooter, DetailWidth, y)

	return encode(dc, ArtifactName(PurposeResult, outcome.Key, displayName))
}

// RenderShareCard draws the 1080x1080 social card.
func (r *Renderer) RenderShareCard(outcomeKey, displayName string) (domain.Artifact, error) {
	outcome, err := r.outcome(outcomeKey)
	if err != nil {
		return domain.Artifact{}, err
	}
	if displayName == "" {
		displayName = defaultUserName
	}

	dc := gg.NewContext(ShareSize, ShareSize)
	dc.SetColor(colorBackground)
	dc.Clear()

	const emojiY = 100
	dc.SetFontFace(face(r.font, 48))
	dc.SetColor(colorAccent)
	drawCentered(dc, outcome.Emoji, ShareSize, emojiY)

	dc.SetFontFace(face(r.font, 36))
	dc.SetColor(colorTitle)
	drawCentered(dc, outcome.DisplayName, ShareSize, emojiY+120)

	dc.SetFontFace(face(r.font, 24))
	dc.SetColor(colorText)
	y := float64(emojiY + 200)
	desc := truncateRunes(outcome.Description, shareDescLimit)
	for _, line := range WrapText(desc, dc, float64(ShareSize-2*margin)) {
		drawCentered(dc, line, ShareSize, y)
		y += 30
	}

	y += 40
	dc.SetColor(colorAccent)
	drawCentered(dc, shareCTA, ShareSize, y)

	y += 60
	dc.SetColor(colorSubtitle)
	drawCentered(dc, shareFooter, ShareSize, y)

	return encode(dc, ArtifactName(PurposeShare, outcome.Key, displayName))
}

func (r *Renderer) outcome(key string) (domain.OutcomeDefinition, error) {
	outcome, ok := r.catalog.Outcome(key)
	if !ok {
		return domain.OutcomeDefinition{}, fmt.Errorf("%w: %s", domain.ErrUnknownOutcome, key)
	}
	return outcome, nil
}

// drawCentered places s horizontally centered with its top edge at y.
func drawCentered(dc *gg.Context, s string, width int, y float64) {
	dc.DrawStringAnchored(s, float64(width)/2, y, 0.5, 1)
}

func drawLeft(dc *gg.Context, s string, y float64) {
	dc.DrawStringAnchored(s, margin, y, 0, 1)
}

func encode(dc *gg.Context, name string) (domain.Artifact, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return domain.Artifact{}, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return domain.Artifact{Name: name, Data: buf.Bytes()}, nil
}

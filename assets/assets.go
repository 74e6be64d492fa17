// Package assets embeds the game's sprite images.
package assets

import (
	"embed"
	"fmt"
	"image"
	"image/png"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed images/*.png
var files embed.FS

// Image names under images/.
const (
	Enemy  = "enemy.png"
	Player = "player.png"
)

// Images holds the decoded sprites, ready to draw.
type Images struct {
	Enemy  *ebiten.Image
	Player *ebiten.Image
}

// Decode reads and decodes one embedded PNG.
func Decode(name string) (image.Image, error) {
	f, err := files.Open("images/" + name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// Load decodes every sprite into an ebiten image.
func Load() (*Images, error) {
	enemy, err := Decode(Enemy)
	if err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}
	player, err := Decode(Player)
	if err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}
	return &Images{
		Enemy:  ebiten.NewImageFromImage(enemy),
		Player: ebiten.NewImageFromImage(player),
	}, nil
}

// Icon returns the window icon candidates.
func Icon() ([]image.Image, error) {
	img, err := Decode(Enemy)
	if err != nil {
		return nil, fmt.Errorf("load icon: %w", err)
	}
	return []image.Image{img}, nil
}

package canopy

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// FillMode selects how a Material colors a primitive.
type FillMode uint8

const (
	FillSolid              FillMode = iota // Color1 everywhere
	FillHorizontalGradient                 // Color1 on the left edge, Color2 on the right
	FillVerticalGradient                   // Color1 on the top edge, Color2 on the bottom
)

// Material describes how a primitive is colored and textured. Sub is the
// normalized region of Texture to sample; the zero Sub samples the whole
// texture. A nil Texture fills with WhitePixel.
type Material struct {
	Name    string
	Fill    FillMode
	Color1  Color
	Color2  Color
	Texture *ebiten.Image
	Sub     Rect
}

// SolidMaterial returns an untextured single-color material.
func SolidMaterial(c Color) Material {
	return Material{Fill: FillSolid, Color1: c, Color2: c}
}

// cornerColors returns the colors of the TL, TR, BL, BR corners.
func (mat *Material) cornerColors() [4]Color {
	switch mat.Fill {
	case FillHorizontalGradient:
		return [4]Color{mat.Color1, mat.Color2, mat.Color1, mat.Color2}
	case FillVerticalGradient:
		return [4]Color{mat.Color1, mat.Color1, mat.Color2, mat.Color2}
	default:
		return [4]Color{mat.Color1, mat.Color1, mat.Color1, mat.Color1}
	}
}

// sourceRect returns the texture and the pixel-space source rectangle.
func (mat *Material) sourceRect() (*ebiten.Image, Rect) {
	tex := mat.Texture
	if tex == nil {
		tex = WhitePixel
	}
	b := tex.Bounds()
	full := Rect{float64(b.Min.X), float64(b.Min.Y), float64(b.Max.X), float64(b.Max.Y)}
	if mat.Texture == nil || mat.Sub.IsZero() {
		return tex, full
	}
	w, h := full.Width(), full.Height()
	return tex, Rect{
		MinX: full.MinX + mat.Sub.MinX*w,
		MinY: full.MinY + mat.Sub.MinY*h,
		MaxX: full.MinX + mat.Sub.MaxX*w,
		MaxY: full.MinY + mat.Sub.MaxY*h,
	}
}

// InsertMaterial interns mat under name. Returns false when the table is
// full or the name's hash is already taken.
func (m *Manager) InsertMaterial(name string, mat Material) bool {
	h := hashName(name)
	if existing, ok := m.materials[h]; ok {
		logger.WithFields(logrus.Fields{
			"name": name, "existing": existing.Name,
		}).Warn("canopy: material collision")
		return false
	}
	if len(m.materials) >= m.cfg.MaxMaterials {
		logger.WithFields(logrus.Fields{
			"name": name, "capacity": m.cfg.MaxMaterials,
		}).Warn("canopy: material table full")
		return false
	}
	mat.Name = name
	m.materials[h] = &mat
	return true
}

// GetMaterial returns the material interned under name, or nil.
func (m *Manager) GetMaterial(name string) *Material {
	mat := m.materials[hashName(name)]
	if mat == nil || mat.Name != name {
		return nil
	}
	return mat
}

// RemoveMaterial drops the material interned under name.
func (m *Manager) RemoveMaterial(name string) bool {
	h := hashName(name)
	if _, ok := m.materials[h]; !ok {
		return false
	}
	delete(m.materials, h)
	return true
}

// NumMaterials returns the number of interned materials.
func (m *Manager) NumMaterials() int { return len(m.materials) }

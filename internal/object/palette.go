package object

import "github.com/tomz197/meteorfall/internal/draw"

// Entity colors.
var (
	ColorPlayer       = draw.MustHex("#22d3ee")
	ColorBullet       = draw.MustHex("#34d399")
	ColorEnemy        = draw.MustHex("#60a5fa")
	ColorRadialBullet = draw.MustHex("#38bdf8")
	ColorAimedBullet  = draw.MustHex("#f97316")
	ColorMeteorInner  = draw.MustHex("#fde68a")
	ColorMeteorOuter  = draw.MustHex("#b45309")
	ColorMeteorRim    = draw.RGB{}
)

package effects

import (
	"fmt"
	"strings"

	"github.com/ivlev/drapery/internal/animation"
)

// ZoomPanFilter builds an ffmpeg zoompan filter that follows the zoom
// track, linear between keys and centered on the frame. It returns "" for
// an empty track.
func ZoomPanFilter(keys animation.Track, fps, width, height int) string {
	if len(keys) == 0 {
		return ""
	}
	return fmt.Sprintf("zoompan=z='%s':x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':d=1:s=%dx%d:fps=%d",
		buildZoomExpression(keys, fps), width, height, fps)
}

// buildZoomExpression nests one if() per segment over the output frame
// number "on".
func buildZoomExpression(keys animation.Track, fps int) string {
	if len(keys) == 1 {
		return fmt.Sprintf("%.6f", keys[0].Value)
	}

	var b strings.Builder
	open := 0
	for i := 0; i < len(keys)-1; i++ {
		startFrame := int(keys[i].Time * float64(fps))
		endFrame := int(keys[i+1].Time * float64(fps))
		if endFrame <= startFrame {
			continue
		}
		fmt.Fprintf(&b, "if(lte(on,%d),%.6f+(on-%d)/%d*(%.6f-%.6f),",
			endFrame, keys[i].Value, startFrame, endFrame-startFrame, keys[i+1].Value, keys[i].Value)
		open++
	}
	fmt.Fprintf(&b, "%.6f", keys[len(keys)-1].Value)
	b.WriteString(strings.Repeat(")", open))
	return b.String()
}

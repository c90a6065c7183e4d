package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/spritesync/session"
)

const scene = `player = Sprite("hero.png")
player.leftEdge = 16
player.topEdge = 32

coins = loadSprites("coin.png")
arrangeGrid(coins, rows=2, cols=3, startX=0, startY=0, spacingX=100, spacingY=100)
`

func main() {
	ctx := context.Background()
	fs := afs.New()

	sceneURL := "mem://localhost/example/scene.py"
	if err := fs.Upload(ctx, sceneURL, 0644, strings.NewReader(scene)); err != nil {
		fmt.Printf("Error writing scene: %v\n", err)
		return
	}

	aSession := session.New(nil)

	// Register live objects under the source tags they correlate through.
	player := aSession.Arena().Add("player-sprite")
	aSession.Arena().Tag(player, "player")
	coins := aSession.Arena().Add("coin-group")
	aSession.Arena().Tag(coins, "coins")

	// The watcher collaborator reports the scene as changed.
	report := aSession.FilesChanged(ctx, []string{sceneURL})
	fmt.Printf("Correlated: scanned=%d updated=%d\n", report.Scanned, report.Updated)

	for _, marker := range aSession.Arena().Markers(player) {
		fmt.Printf("player marker: %s %s at line %d (%s)\n",
			marker.Kind, marker.Attribute, marker.Line, marker.Status)
	}

	// The editor dragged the player and one coin; export writes it back.
	export := aSession.Export(ctx, []session.Placement{
		{Handle: player, X: 48, Y: 64},
		{Handle: coins, X: 50, Y: 150},
	})
	fmt.Printf("Exported: updated=%d skipped=%d failed=%d backups=%v\n",
		export.Updated, export.Skipped, export.Failed, export.Backups)

	records, err := aSession.Engine().ListOverrides(ctx, sceneURL, 6)
	if err != nil {
		fmt.Printf("Error listing overrides: %v\n", err)
		return
	}
	for _, record := range records {
		fmt.Printf("override: row=%d col=%d x=%d y=%d\n",
			*record.Row, *record.Col, *record.X, *record.Y)
	}

	edited, _ := fs.DownloadWithURL(ctx, sceneURL)
	fmt.Printf("--- edited scene ---\n%s", edited)
}

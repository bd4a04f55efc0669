// AtlasPack packs sprite images into a power-of-two texture atlas and writes
// a map file describing where every sprite ended up.
//
// Build:
//   go build -o atlaspack ./cmd/atlaspack
//
// Usage:
//   atlaspack pack -o out/atlas --format json sprites/
//   atlaspack compare sprites/
//   atlaspack config init

package main

import "github.com/piwi3910/AtlasPack/cmd/atlaspack/commands"

func main() {
	commands.Execute()
}

package lifecycle

import (
	"context"
)

// Seeder moves card lab content between the database and YAML seed
// files.
//
// Import goes through the same operations as the API: registries and
// shared entities are get-or-create, cards are always added as new
// cards, so importing a file twice duplicates its cards.
type Seeder interface {
	// Import loads a seed file into the lab.
	Import(ctx context.Context, path string) error

	// Export writes the current state of the lab to a seed file.
	Export(ctx context.Context, path string) error
}

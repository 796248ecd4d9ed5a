package listmigrations

import (
	"context"
	"fmt"

	listdb "github.com/Black-And-White-Club/demonlist/app/modules/list/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating list_manifest and list_levels tables...")

		if _, err := db.NewCreateTable().Model((*listdb.ManifestEntry)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*listdb.LevelDocument)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		_, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_list_levels_updated_at ON list_levels (updated_at DESC)").Exec(ctx)
		if err != nil {
			return err
		}

		fmt.Println("List tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping list tables...")

		if _, err := db.NewRaw("DROP TABLE IF EXISTS list_manifest").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("DROP TABLE IF EXISTS list_levels").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("List tables dropped successfully!")
		return nil
	})
}

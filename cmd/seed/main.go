// Command seed loads the category tree from a CSV file using encoding/csv.
//
// Expected columns, header row required: name,slug,parent_slug,icon.
// parent_slug and icon may be empty. All rows commit in a single
// transaction, or none do.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/internal/config"
	"github.com/rentalmarket/core/internal/store"
	"github.com/rentalmarket/core/models"
)

type row struct {
	Name       string
	Slug       string
	ParentSlug string
	Icon       string
}

func main() {
	path := flag.String("file", "categories.csv", "path to the category CSV file")
	dryRun := flag.Bool("dry-run", false, "parse and validate without committing")
	update := flag.Bool("update", false, "update name/icon of categories that already exist by slug")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	rows, err := readRows(*path)
	if err != nil {
		log.Fatalf("reading %s: %v", *path, err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}

	var created, updated, skipped int
	ctx := context.Background()
	err = db.Transaction(func(tx *gorm.DB) error {
		s := store.New(tx)
		bySlug := map[string]*models.Category{}

		for _, r := range rows {
			existing, err := getCategoryBySlug(tx, r.Slug)
			if err != nil {
				return fmt.Errorf("looking up slug %q: %w", r.Slug, err)
			}
			if existing != nil {
				if *update {
					existing.Name = r.Name
					existing.Icon = r.Icon
					if err := s.UpdateCategory(ctx, existing); err != nil {
						return fmt.Errorf("updating slug %q: %w", r.Slug, err)
					}
					updated++
				} else {
					skipped++
				}
				bySlug[r.Slug] = existing
				continue
			}

			c := &models.Category{Slug: r.Slug, Name: r.Name, Icon: r.Icon}
			if err := s.CreateCategory(ctx, c); err != nil {
				return fmt.Errorf("creating slug %q: %w", r.Slug, err)
			}
			bySlug[r.Slug] = c
			created++
		}

		for _, r := range rows {
			if r.ParentSlug == "" {
				continue
			}
			child := bySlug[r.Slug]
			parent, ok := bySlug[r.ParentSlug]
			if !ok {
				return fmt.Errorf("slug %q references unknown parent_slug %q", r.Slug, r.ParentSlug)
			}
			child.ParentID = &parent.ID
			if err := s.UpdateCategory(ctx, child); err != nil {
				if ae, ok := apperr.As(err); ok && ae.Code == apperr.CodeValidation {
					return fmt.Errorf("slug %q: %w", r.Slug, err)
				}
				return fmt.Errorf("setting parent for slug %q: %w", r.Slug, err)
			}
		}

		if *dryRun {
			return dryRunSentinel{}
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(dryRunSentinel); ok {
			fmt.Printf("dry run: would create=%d update=%d skip=%d\n", created, updated, skipped)
			return
		}
		log.Fatalf("seed failed, nothing committed: %v", err)
	}

	fmt.Printf("created=%d updated=%d skipped=%d\n", created, updated, skipped)
}

func readRows(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[h] = i
	}
	for _, want := range []string{"name", "slug"} {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("missing required column %q", want)
		}
	}

	var out []row
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		r := row{Name: rec[cols["name"]], Slug: rec[cols["slug"]]}
		if i, ok := cols["parent_slug"]; ok && i < len(rec) {
			r.ParentSlug = rec[i]
		}
		if i, ok := cols["icon"]; ok && i < len(rec) {
			r.Icon = rec[i]
		}
		out = append(out, r)
	}
	return out, nil
}

func getCategoryBySlug(tx *gorm.DB, slug string) (*models.Category, error) {
	var c models.Category
	err := tx.Where("slug = ?", slug).First(&c).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type dryRunSentinel struct{}

func (dryRunSentinel) Error() string { return "dry run: rolling back" }

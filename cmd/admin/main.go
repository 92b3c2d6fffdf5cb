// Command admin is the operator's tool for managing tenants. It talks to the
// database directly — there is deliberately no HTTP surface for creating
// domains or minting their tokens.
//
// Usage:
//
//	admin create-domain <display-name>
//	admin list-domains
//	admin mint-token <domain-id> [ttl]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/lalith-99/luxgrid/internal/auth"
	"github.com/lalith-99/luxgrid/internal/config"
	"github.com/lalith-99/luxgrid/internal/db"
	"github.com/lalith-99/luxgrid/internal/repository/postgres"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: admin <create-domain|list-domains|mint-token> ...")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()

	switch args[0] {
	case "create-domain":
		if len(args) != 2 {
			return fmt.Errorf("usage: admin create-domain <display-name>")
		}
		domains, cleanup, err := openDomains(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		d, err := domains.Create(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", d.ID, d.DisplayName)
		return nil

	case "list-domains":
		domains, cleanup, err := openDomains(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		all, err := domains.FetchAll(ctx)
		if err != nil {
			return err
		}
		for _, d := range all {
			fmt.Printf("%s\t%s\t%s\n", d.ID, d.CreatedAt.Format(time.RFC3339), d.DisplayName)
		}
		return nil

	case "mint-token":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("usage: admin mint-token <domain-id> [ttl]")
		}
		domainID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("parse domain id: %w", err)
		}
		ttl := 24 * time.Hour
		if len(args) == 3 {
			if ttl, err = time.ParseDuration(args[2]); err != nil {
				return fmt.Errorf("parse ttl: %w", err)
			}
		}

		// Verify the domain exists before handing out a token for it.
		domains, cleanup, err := openDomains(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()
		if _, err := domains.FetchOne(ctx, domainID); err != nil {
			return err
		}

		token, err := auth.GenerateToken(domainID, cfg.JWTSecret, ttl)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func openDomains(ctx context.Context, cfg *config.Config) (*postgres.DomainStore, func(), error) {
	if err := db.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return postgres.NewDomainStore(pool), pool.Close, nil
}

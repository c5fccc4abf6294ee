package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/is24/projects-manager/internal/projects/domain"
	"github.com/is24/projects-manager/internal/projects/service"
	"github.com/is24/projects-manager/internal/storage/jsonfile"
)

// RunCheck validates every record of a data file.
// usage: worker check [dataFile]
func RunCheck(args []string) {
	path := "./server/data.json"
	if len(args) > 0 {
		path = args[0]
	}

	invalid, err := checkFile(context.Background(), path, os.Stdout)
	if err != nil {
		log.Fatalf("check %s: %v", path, err)
	}
	if invalid > 0 {
		os.Exit(1)
	}
}

// checkFile reports each invalid or duplicated record to out and returns
// how many problems were found.
func checkFile(ctx context.Context, path string, out io.Writer) (int, error) {
	data, err := jsonfile.New(path).Load(ctx)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		fmt.Fprintf(out, "%s: no projects\n", path)
		return 0, nil
	}

	var projects []domain.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return 0, fmt.Errorf("decode: %w", err)
	}

	problems := 0
	seen := make(map[string]int, len(projects))
	for i := range projects {
		p := projects[i]
		if p.ProductID == "" {
			fmt.Fprintf(out, "#%d: missing productId\n", i)
			problems++
		} else if first, ok := seen[p.ProductID]; ok {
			fmt.Fprintf(out, "#%d: productId %s already used by #%d\n", i, p.ProductID, first)
			problems++
		} else {
			seen[p.ProductID] = i
		}

		if err := service.Validate(&p); err != nil {
			fmt.Fprintf(out, "#%d (%s): %v\n", i, p.ProductID, err)
			problems++
		}
	}

	fmt.Fprintf(out, "%s: %d projects, %d problems\n", path, len(projects), problems)
	return problems, nil
}

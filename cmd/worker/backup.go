package main

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/is24/projects-manager/internal/backup"
	"github.com/is24/projects-manager/internal/storage/jsonfile"
)

// RunBackup copies a data file into the backup directory once.
// usage: worker backup [dataFile] [outDir] [keep]
func RunBackup(args []string) {
	path := "./server/data.json"
	outDir := "./server/backups"
	keep := 7

	if len(args) > 0 {
		path = args[0]
	}
	if len(args) > 1 {
		outDir = args[1]
	}
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			log.Fatalf("invalid keep %q: %v", args[2], err)
		}
		keep = n
	}

	data, err := jsonfile.New(path).Load(context.Background())
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	if data == nil {
		log.Fatalf("%s does not exist", path)
	}

	file, err := backup.WriteSnapshot(outDir, data, time.Now())
	if err != nil {
		log.Fatal(err)
	}
	if err := backup.Prune(outDir, keep); err != nil {
		log.Printf("prune: %v", err)
	}

	log.Printf("backup written: %s", file)
}

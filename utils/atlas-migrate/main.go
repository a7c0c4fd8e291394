// Package main - prints the scribe schema for Atlas migrations
package main

import (
	"fmt"
	"os"

	"ariga.io/atlas-provider-gorm/gormschema"
	"github.com/alwitt/scribe/db"
	"github.com/apex/log"
)

func main() {
	dialect := "postgres"
	if len(os.Args) > 1 {
		dialect = os.Args[1]
	}
	stmts, err := gormschema.New(dialect).Load(
		&db.SystemEventAuditDBEntry{},
		&db.EncryptionKeyDBEntry{},
		&db.PostDBEntry{},
	)
	if err != nil {
		log.WithError(err).WithField("dialect", dialect).Fatal("Failed to load post store models")
	}
	fmt.Printf("%s\n", stmts)
}

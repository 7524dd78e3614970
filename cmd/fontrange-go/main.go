package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/AkimioJR/fontrange-go/font"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
)

var (
	dbPath     = flag.String("db", "", "Path to the font database file, if not specified it will rebuild database from -fonts")
	saveDBPath = flag.String("savedb", "", "Path to save the built font database, empty means don't save it")
	fontPaths  = flag.String("fonts", "", "Path to the font files, use ',' to split it")
	baseline   = flag.String("baseline", "", "Name of the baseline face, other faces only declare their unique coverage")
	concurrent = flag.Bool("concurrent", false, "Generate unicode-range for each face concurrently")
)

func logger(err error) bool {
	switch err.(type) {
	case *font.InfoMsg:
		fmt.Printf("%s[INFO]%s %s\n", ColorBlue, ColorReset, err.Error())
	case *font.WarningMsg:
		fmt.Printf("%s[WARNING]%s %s\n", ColorYellow, ColorReset, err.Error())
	default:
		fmt.Printf("%s[ERROR]%s %s\n", ColorRed, ColorReset, err.Error())
	}
	return true
}

func main() {
	flag.Parse()

	db := font.NewFontDataBase()

	if *dbPath != "" {
		if err := db.LoadDB(*dbPath); err != nil {
			panic(err)
		}
	} else {
		if err := db.BuildDB(strings.Split(*fontPaths, ","), logger); err != nil {
			panic(err)
		}
	}

	if *saveDBPath != "" {
		if err := db.SaveDB(*saveDBPath); err != nil {
			panic(err)
		}
	}

	opts := []font.RangeOption{font.WithCheckErr(logger)}
	if *baseline != "" {
		opts = append(opts, font.WithBaseline(*baseline))
	}
	if *concurrent {
		opts = append(opts, font.WithConcurrent())
	}

	fontRanges, err := db.UnicodeRanges(opts...)
	if err != nil {
		panic(err)
	}

	for _, fr := range fontRanges {
		fmt.Printf("\"%s\"[%d] %s: %s\n", fr.Source.Path, fr.Source.Index, fr.Family, fr.Range)
	}
}

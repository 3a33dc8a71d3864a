/**
 * Filename: main.go
 * Path: cmd/allhic-merge
 */

package main

import (
	"fmt"
	"os"
	"time"

	logging "github.com/op/go-logging"
	"github.com/urfave/cli"

	allhicmerge "github.com/tanghaibao/allhic-merge"
)

var log = logging.MustGetLogger("main")

func init() {
	cli.AppHelpTemplate = `
   __  __                     __  __
  / / / /__ ___ ___ _____  __/ / / /_______
 / /_/ / -_) -_) _ '/ _ \/ // / /__/ __/ _ \
 \____/\__/\__/\_,_/_//_/\_,_/_/   \__/\___/
  merge linear assembly paths back into contigs

` + cli.AppHelpTemplate
}

func main() {
	logging.SetBackend(allhicmerge.BackendFormatter)

	app := cli.NewApp()
	app.Compiled = time.Now()
	app.Name = "allhic-merge"
	app.Usage = "Merge linear assembly paths through a contig set"
	app.Version = allhicmerge.Version

	app.Commands = []cli.Command{
		{
			Name:  "merge",
			Usage: "Link and dedupe paths, then emit a path listing or spliced FASTA",
			UsageText: `
	allhic-merge merge [contigsfile] pathsfile [options]

Merge function:
Reads a linear-path file, reconciles orientation between any two paths that
share a contig, links paths that chain together, and drops paths fully
subsumed by another. Given only a paths file, writes the deduped result as
a plain path listing. Given a contigs file as well, splices each canonical
path under the k-1 overlap contract and writes spliced FASTA instead.
`,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "o", Usage: "Output file (required with a contigs file; otherwise default: stdout)"},
				cli.IntFlag{Name: "k", Usage: "k-mer size used to assemble the contigs", Value: 0},
				cli.IntFlag{Name: "v", Usage: "Verbosity (0=notice, 1=info, 2=debug)", Value: 0},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 || c.NArg() > 2 {
					cli.ShowSubcommandHelp(c)
					return cli.NewExitError("Must specify [contigsfile] pathsfile", 2)
				}

				cfg := &allhicmerge.Config{
					OutputFile: c.String("o"),
					K:          c.Int("k"),
					Verbosity:  c.Int("v"),
				}
				if c.NArg() == 1 {
					cfg.PathsFile = c.Args().Get(0)
					cfg.Mode = allhicmerge.PathsOnly
				} else {
					cfg.ContigsFile = c.Args().Get(0)
					cfg.PathsFile = c.Args().Get(1)
					cfg.Mode = allhicmerge.Fasta
				}
				allhicmerge.SetVerbosity(cfg.Verbosity)

				m := allhicmerge.NewMerger(cfg)
				if err := m.Run(); err != nil {
					return exitError(err)
				}
				return nil
			},
		},
		{
			Name:  "stats",
			Usage: "Cross-check declared contig coverage against a BAM file",
			UsageText: `
	allhic-merge stats contigsfile bamfile [options]

Stats function:
Given a contig FASTA and a BAM file of read alignments against the same
contigs, reports every contig whose declared per-k-mer coverage disagrees
with its observed alignment density by more than the configured tolerance.
`,
			Flags: []cli.Flag{
				cli.IntFlag{Name: "k", Usage: "k-mer size used to assemble the contigs", Value: 31},
				cli.Float64Flag{Name: "tolerance", Usage: "fractional disagreement still considered consistent", Value: 0.5},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowSubcommandHelp(c)
					return cli.NewExitError("Must specify contigsfile and bamfile", 2)
				}

				contigsfile := c.Args().Get(0)
				bamfile := c.Args().Get(1)

				reader := &allhicmerge.ContigReader{Fastafile: contigsfile}
				table, err := reader.Read()
				if err != nil {
					return exitError(err)
				}

				f, err := os.Open(bamfile)
				if err != nil {
					return exitError(&allhicmerge.IOError{Path: bamfile, Err: err})
				}
				defer f.Close()

				auditor := allhicmerge.NewCoverageAuditor(bamfile, table, c.Int("k"))
				auditor.Tolerance = c.Float64("tolerance")

				discrepancies, err := auditor.Audit(f)
				if err != nil {
					return exitError(err)
				}
				if err := allhicmerge.Report(os.Stdout, discrepancies); err != nil {
					return exitError(err)
				}
				log.Noticef("Found %d coverage discrepancies", len(discrepancies))
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// exitError wraps an ExitCoder into a cli.ExitError so app.Run reports the
// right process exit status.
func exitError(err error) error {
	if coder, ok := err.(allhicmerge.ExitCoder); ok {
		return cli.NewExitError(coder.Error(), coder.ExitCode())
	}
	return cli.NewExitError(err.Error(), 1)
}

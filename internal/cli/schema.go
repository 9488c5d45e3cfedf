package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/userbooks/internal/database"
)

// SchemaCommand prints the relational DDL for one dialect.
type SchemaCommand struct {
	Dialect string

	out io.Writer
}

func NewSchemaCommand(out io.Writer) *SchemaCommand {
	return &SchemaCommand{out: out}
}

func (cmd *SchemaCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)

	fs.StringVar(&cmd.Dialect, "dialect", database.DialectSQLite, "SQL dialect: sqlite or postgres")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s schema [-dialect sqlite|postgres]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print the tables used by the orm and sql storage backends.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s schema -dialect postgres | psql \"$DATABASE_DSN\"\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *SchemaCommand) Run() error {
	ddl, err := database.Schema(cmd.Dialect)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.out, ddl)
	return err
}

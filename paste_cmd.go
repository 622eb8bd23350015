package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quotationeditor/config"
	"quotationeditor/grid"
	"quotationeditor/services"
)

var errNotMultiCell = errors.New("input holds no tab or line separated rows")

// storeOpener returns the quotation store once the app is bootstrapped.
type storeOpener func() (*services.QuotationStore, error)

// newPasteCommand builds the "paste" subcommand. It turns spreadsheet rows
// from the clipboard (or --file) into quotation line items, prints them
// with their totals and optionally saves them as a new quotation.
func newPasteCommand(cfg config.Config, logger *zap.Logger, openStore storeOpener, readClipboard func() (string, error)) *cobra.Command {
	var (
		file string
		save bool
	)

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Preview or save spreadsheet rows copied to the clipboard as a quotation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				text string
				err  error
			)
			if file != "" {
				var b []byte
				b, err = os.ReadFile(file)
				text = string(b)
			} else {
				text, err = readClipboard()
			}
			if err != nil {
				return fmt.Errorf("read paste input: %w", err)
			}

			m := grid.NewModel(cfg.Defaults())
			if !m.Paste(text) {
				return errNotMultiCell
			}
			if err := printQuotation(cmd.OutOrStdout(), m.Serialize(), m.Totals()); err != nil {
				return err
			}

			if !save {
				return nil
			}
			store, err := openStore()
			if err != nil {
				return err
			}
			id, err := store.Save(context.Background(), m.Serialize())
			if err != nil {
				return err
			}
			logger.Info("pasted quotation saved", zap.String("id", id))
			fmt.Fprintf(cmd.OutOrStdout(), "\nSaved quotation %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read rows from a file instead of the clipboard")
	cmd.Flags().BoolVar(&save, "save", false, "store the rows as a new quotation")
	return cmd
}

// printQuotation writes the rows and the totals block as aligned columns.
func printQuotation(w io.Writer, q grid.Quotation, t grid.Totals) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tCode\tDescription\tUnit\tQty\tMaterial\tLabor\tTotal\t")
	for i, it := range q.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			i+1,
			it.Code,
			it.Description,
			it.Unit,
			grid.FormatNumber(it.Quantity),
			services.FormatAmount(it.MaterialUnitPrice),
			services.FormatAmount(it.LaborPrice),
			services.FormatAmount(grid.LineTotal(it)),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	cur := q.Header.Currency
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Scope total:  %s\n", services.FormatMoney(cur, t.ScopeTotal))
	fmt.Fprintf(w, "VAT:          %s\n", services.FormatMoney(cur, t.VATAmount))
	fmt.Fprintf(w, "Grand total:  %s\n", services.FormatMoney(cur, t.GrandTotal))
	return nil
}

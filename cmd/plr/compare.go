package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/plrgo/internal/compare"
)

func compareCmd(a *app) *cobra.Command {
	var (
		opts   compare.CompareOptions
		format string
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the PLR of one salary across banks",
		Example: "  plr compare --base safra --salario 5000\n" +
			"  plr compare --base itau --banks bradesco,santander --salario 9000 --meses 8",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := compare.NewCompareEngine(a.engine).Compare(cmd.Context(), opts)
			if err != nil {
				return err
			}

			var out string
			switch format {
			case "console", "":
				out = (&compare.TableFormatter{}).Format(set)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(set) + "\n"
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
				out += "\n"
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(set)
			default:
				return fmt.Errorf("unknown format %q (valid: console, compact, json, csv)", format)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&opts.BaseBank, "base", "", "Bank every other bank is measured against")
	cmd.Flags().StringSliceVar(&opts.Banks, "banks", nil, "Banks to compare (default: all)")
	cmd.Flags().Float64VarP(&opts.Salario, "salario", "s", 0, "Monthly base salary in R$")
	cmd.Flags().Float64VarP(&opts.MesesTrabalhados, "meses", "m", 12, "Months worked in the year (1-12)")
	cmd.Flags().StringVarP(&opts.Parcela, "parcela", "p", "total", "Installment: total, primeira, segunda")
	cmd.Flags().BoolVar(&opts.IncluirContribuicaoSindical, "sindical", false, "Deduct the union contribution")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format: console, compact, json, csv")
	_ = cmd.MarkFlagRequired("base")
	_ = cmd.MarkFlagRequired("salario")
	return cmd
}

package main

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/plrgo/internal/calculation"
	"github.com/rgehrsitz/plrgo/internal/config"
	"github.com/rgehrsitz/plrgo/internal/output"
)

var nowFunc = time.Now

func formatterFor(name string) (output.Formatter, error) {
	f := output.GetFormatterByName(name)
	if f == nil {
		return nil, fmt.Errorf("unknown format %q (valid: %v)", name, output.FormatNames())
	}
	return f, nil
}

func calculateCmd(a *app) *cobra.Command {
	var (
		in            calculation.PlrInput
		format        string
		valorPrograma float64
		multiplicador float64
		valorPrimeira float64
	)
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate the PLR for one employee",
		Example: "  plr calculate --bank itau --salario 8000 --meses 12\n" +
			"  plr calculate --bank caixa --salario 25000 --parcela primeira --sindical\n" +
			"  plr calculate --bank itau --salario 8000 --valor-primeira 12000",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatterFor(format)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("valor-programa") {
				in.ValorPrograma = &valorPrograma
			}
			if cmd.Flags().Changed("multiplicador") {
				in.Multiplicador = &multiplicador
			}
			if cmd.Flags().Changed("valor-primeira") {
				in.ValorPrimeiraParcela = &valorPrimeira
			}

			result, err := a.engine.CalculatePlr(in)
			if err != nil {
				return err
			}
			a.record(result.Calculation)

			data, err := f.FormatPlr(result)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&in.BankID, "bank", "b", "", "Bank id (see 'plr banks')")
	cmd.Flags().Float64VarP(&in.Salario, "salario", "s", 0, "Monthly base salary in R$")
	cmd.Flags().Float64VarP(&in.MesesTrabalhados, "meses", "m", 12, "Months worked in the year (1-12)")
	cmd.Flags().StringVarP(&in.Parcela, "parcela", "p", "total", "Installment: total, primeira, segunda")
	cmd.Flags().BoolVar(&in.IncluirContribuicaoSindical, "sindical", false, "Deduct the union contribution")
	cmd.Flags().Float64Var(&valorPrograma, "valor-programa", 0, "Explicit supplemental program amount in R$")
	cmd.Flags().Float64Var(&multiplicador, "multiplicador", 0, "Salary multiplier for the supplemental program")
	cmd.Flags().Float64Var(&valorPrimeira, "valor-primeira", 0, "Gross already received as 1ª parcela in R$; splits the IRRF between the payments")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format: console, json, csv")
	_ = cmd.MarkFlagRequired("bank")
	_ = cmd.MarkFlagRequired("salario")
	return cmd
}

func discoverCmd(a *app) *cobra.Command {
	var (
		in     calculation.DiscoverMultiplierInput
		format string
	)
	cmd := &cobra.Command{
		Use:     "discover",
		Short:   "Derive the effective multiplier from observed installments",
		Example: "  plr discover --salario 5000 --primeira 4500 --segunda 6500",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatterFor(format)
			if err != nil {
				return err
			}
			result, err := a.engine.DiscoverMultiplier(in)
			if err != nil {
				return err
			}
			data, err := f.FormatDiscovery(result)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().Float64VarP(&in.Salario, "salario", "s", 0, "Monthly base salary in R$")
	cmd.Flags().Float64Var(&in.BrutoPrimeiraParcela, "primeira", 0, "Gross amount of the first installment")
	cmd.Flags().Float64Var(&in.BrutoSegundaParcela, "segunda", 0, "Gross amount of the second installment")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format: console, json, csv")
	_ = cmd.MarkFlagRequired("salario")
	return cmd
}

// batchOutput is the JSON document written by 'plr batch --format json'.
type batchOutput struct {
	Calculations []*calculation.PlrResult              `json:"calculations"`
	Discoveries  []*calculation.DiscoverMultiplierResult `json:"discoveries"`
}

func batchCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "batch [input-file]",
		Short: "Run every calculation and discovery in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatterFor(format)
			if err != nil {
				return err
			}
			batch, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			var out batchOutput
			for i, in := range batch.Calculations {
				r, err := a.engine.CalculatePlr(in)
				if err != nil {
					return fmt.Errorf("calculation %d: %w", i, err)
				}
				a.record(r.Calculation)
				out.Calculations = append(out.Calculations, r)
			}
			for i, in := range batch.Discoveries {
				r, err := a.engine.DiscoverMultiplier(in)
				if err != nil {
					return fmt.Errorf("discovery %d: %w", i, err)
				}
				out.Discoveries = append(out.Discoveries, r)
			}
			a.logger.Info("lote processado",
				"file", args[0],
				"calculations", len(out.Calculations),
				"discoveries", len(out.Discoveries))

			w := cmd.OutOrStdout()
			switch f := f.(type) {
			case output.JSONFormatter:
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(w, string(data))
				return err
			case output.CSVFormatter:
				if len(out.Calculations) > 0 {
					data, err := f.FormatPlrRows(out.Calculations)
					if err != nil {
						return err
					}
					if _, err := w.Write(data); err != nil {
						return err
					}
				}
				if len(out.Discoveries) > 0 {
					if len(out.Calculations) > 0 {
						fmt.Fprintln(w)
					}
					data, err := f.FormatDiscoveryRows(out.Discoveries)
					if err != nil {
						return err
					}
					_, err = w.Write(data)
					return err
				}
				return nil
			default:
				for _, r := range out.Calculations {
					data, err := f.FormatPlr(r)
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "%s\n", data)
				}
				for _, r := range out.Discoveries {
					data, err := f.FormatDiscovery(r)
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "%s\n", data)
				}
				return nil
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format: console, json, csv")
	return cmd
}

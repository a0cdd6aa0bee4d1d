package main

import (
	"fmt"
	"time"

	"github.com/cyphera/storefront/internal/checkout"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [form.yaml]",
	Short: "Validate a checkout form offline",
	Long: `Runs every field rule against a form file and reports the verdicts in
form order. Backend lookups are not performed: address fields are judged
on their local content and the chosen delivery slot is assumed quoted.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	form, err := readForm(args[0])
	if err != nil {
		return err
	}

	st := &checkout.State{
		Form:    form.values(),
		Visited: checkout.NewVisitedFieldSet(),
	}
	st.Visited.MarkAll()
	date, hour := st.Form.Get(checkout.FieldDeliveryDate), st.Form.Get(checkout.FieldDeliveryHour)
	if date != "" && hour != "" {
		st.Quotation = &checkout.DeliveryQuotation{Date: date, Hour: hour}
	}
	facts := checkout.Facts{State: st, Now: time.Now()}
	registry := checkout.NewRegistry(checkout.DefaultBindings())

	out := cmd.OutOrStdout()
	for _, v := range registry.ValidateAll(facts) {
		verdict := "ok"
		switch {
		case v.Ignored:
			verdict = "ignored"
		case !v.IsValid:
			verdict = "INVALID"
		}
		fmt.Fprintf(out, "%-22s %s\n", v.Field, verdict)
	}

	if invalid, found := registry.FirstInvalid(facts); found {
		return fmt.Errorf("form is invalid: first invalid field is %s", invalid.Field)
	}
	fmt.Fprintln(out, "form is valid")
	return nil
}

// Command formstamp stamps structured field values onto a DA Form 2404
// template and serves the stamping API.
//
//	formstamp serve              run the HTTP API
//	formstamp stamp              stamp a template with a JSON payload file
//	formstamp preview            produce the labels-mode annotated blank form
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lvillar/formstamp"
	"github.com/lvillar/formstamp/config"
	"github.com/lvillar/formstamp/httpapi"
	"github.com/lvillar/formstamp/mail"
	"github.com/lvillar/formstamp/profile"
	"github.com/lvillar/formstamp/store"
)

var (
	cfgPath string
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "formstamp",
	Short: "Stamp field values onto a fixed-layout maintenance form",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = zap.NewProduction()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP stamping API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		p := profile.ByID(cfg.Profile)
		if p == nil {
			return fmt.Errorf("unknown template profile %q", cfg.Profile)
		}

		var sender mail.Sender
		if cfg.SMTP.Host != "" {
			sender, err = mail.NewSMTPSender(mail.SMTPConfig{
				Host:     cfg.SMTP.Host,
				Port:     cfg.SMTP.Port,
				Username: cfg.SMTP.Username,
				Password: cfg.SMTP.Password,
			})
			if err != nil {
				return err
			}
		}

		handler := &httpapi.Handler{
			Stamper:   formstamp.New(formstamp.WithProfile(p), formstamp.WithLogger(logger)),
			Templates: httpapi.FileSource{Path: cfg.TemplatePath},
			Mail:      sender,
			Schema:    store.FormTable(),
			From:      cfg.MailFrom,
			Log:       logger,
		}

		logger.Info("listening",
			zap.String("addr", cfg.Addr),
			zap.String("profile", p.ID),
			zap.String("template", cfg.TemplatePath))
		return http.ListenAndServe(cfg.Addr, handler)
	},
}

var (
	templatePath string
	payloadPath  string
	outPath      string
	profileID    string
)

var stampCmd = &cobra.Command{
	Use:   "stamp",
	Short: "Stamp a template file with a JSON payload and write the output PDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]any{}
		if payloadPath != "" {
			data, err := os.ReadFile(payloadPath)
			if err != nil {
				return err
			}
			if err := json.Unmarshal(data, &payload); err != nil {
				return fmt.Errorf("parsing %s: %w", payloadPath, err)
			}
		}
		return stampToFile(payload)
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Produce the annotated blank form (every field shows its label)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stampToFile(map[string]any{"_labels": true})
	},
}

func stampToFile(payload map[string]any) error {
	p := profile.ByID(profileID)
	if p == nil {
		return fmt.Errorf("unknown template profile %q", profileID)
	}
	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return err
	}

	stamper := formstamp.New(formstamp.WithProfile(p), formstamp.WithLogger(logger))
	out, filename, err := stamper.Stamp(tmpl, payload)
	if err != nil {
		return err
	}

	dest := outPath
	if dest == "" {
		dest = filename
	}
	if err := os.WriteFile(dest, out, 0o644); err != nil {
		return err
	}
	logger.Info("stamped", zap.String("output", dest), zap.Int("bytes", len(out)))
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "formstamp.yaml", "path to the YAML config file")

	for _, c := range []*cobra.Command{stampCmd, previewCmd} {
		c.Flags().StringVar(&templatePath, "template", "", "path to the template PDF (required)")
		c.Flags().StringVar(&payloadPath, "payload", "", "path to the JSON payload file")
		c.Flags().StringVarP(&outPath, "out", "o", "", "output file (defaults to the resolved FORM_<id>.pdf)")
		c.Flags().StringVar(&profileID, "profile", profile.Default().ID, "template layout profile id")
		_ = c.MarkFlagRequired("template")
	}
	previewCmd.Flags().Lookup("payload").Hidden = true

	rootCmd.AddCommand(serveCmd, stampCmd, previewCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "formstamp: %v\n", err)
		os.Exit(1)
	}
}

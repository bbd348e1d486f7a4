package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"peliculas/pkg/models"
)

const defaultBaseURL = "http://localhost:8000"

func newRootCommand() *cobra.Command {
	var baseURL string
	var timeout time.Duration

	client := func() *apiClient {
		return &apiClient{
			baseURL: strings.TrimRight(baseURL, "/"),
			http:    &http.Client{Timeout: timeout},
		}
	}

	rootCmd := &cobra.Command{
		Use:           "peliculas",
		Short:         "Consulta la API de películas",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&baseURL, "api", defaultBaseURL, "API base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "HTTP timeout")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "mes <nombre>",
			Short: "Películas estrenadas en un mes",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var out models.CountResponse
				if err := client().get(cmd.Context(), "/peliculas/mes/", "mes", args[0], &out); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out.Mensaje)
				return nil
			},
		},
		&cobra.Command{
			Use:   "dia <nombre>",
			Short: "Películas estrenadas en un día de la semana",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var out models.CountResponse
				if err := client().get(cmd.Context(), "/peliculas/dia/", "dia", args[0], &out); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out.Mensaje)
				return nil
			},
		},
		newMessageCommand("votes <title>", "Votos de una película", "/votes/", client),
		newMessageCommand("score <title>", "Año y popularidad de una película", "/score/", client),
		&cobra.Command{
			Use:   "titles",
			Short: "Lista todos los títulos",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				var titles []string
				if err := client().get(cmd.Context(), "/titles/", "", "", &titles); err != nil {
					return err
				}
				rows := make([][]string, 0, len(titles))
				for i, title := range titles {
					rows = append(rows, []string{strconv.Itoa(i + 1), title})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"#", "Título"}, rows))
				return nil
			},
		},
	)
	return rootCmd
}

// newMessageCommand builds the title lookups; the title may span several args.
func newMessageCommand(use, short, path string, client func() *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out models.MessageResponse
			if err := client().get(cmd.Context(), path, "title", strings.Join(args, " "), &out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			return nil
		},
	}
}

// ABOUTME: fetch subcommand prints a parsed article
// ABOUTME: Furigana is rendered inline, as plain text, as kana, as ruby HTML or as JSON

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"yomu-news-api/api/dto/responses"
	"yomu-news-api/core/domain"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Print an article with its furigana",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			render, err := articleRenderer(format)
			if err != nil {
				return err
			}
			c, err := ctx.client()
			if err != nil {
				return err
			}
			article, err := c.FetchNews(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(article)
			}
			printArticle(out, article, render, shouldColorize(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "annotated", "Output format: annotated, plain, kana, html or json")
	return cmd
}

func articleRenderer(format string) (func([]domain.ContentNode) string, error) {
	switch strings.ToLower(format) {
	case "annotated", "json":
		return domain.RenderAnnotated, nil
	case "plain":
		return domain.FlattenText, nil
	case "kana":
		return domain.FlattenReading, nil
	case "html":
		return domain.RenderHTML, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func printArticle(w io.Writer, article *responses.FetchNewsResponse, render func([]domain.ContentNode) string, color bool) {
	fmt.Fprintln(w, paint(render(article.Title), ansiBold, color))

	var meta []string
	if article.PublishedDate != nil {
		meta = append(meta, article.PublishedDate.Format("2006-01-02 15:04 MST"))
	}
	if len(article.Labels) > 0 {
		meta = append(meta, strings.Join(article.Labels, ", "))
	}
	meta = append(meta, article.SourceDomain)
	fmt.Fprintln(w, paint(strings.Join(meta, " | "), ansiDim, color))

	for _, img := range article.Images {
		fmt.Fprintln(w, paint("image: "+img, ansiDim, color))
	}

	for _, p := range article.Content {
		fmt.Fprintln(w)
		fmt.Fprintln(w, render(p.Content))
	}
}

package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Coshio12/gestionar-carrera/internal/inscritos"
	"github.com/Coshio12/gestionar-carrera/internal/view"
)

func newListCmd(open func() (source, int, error)) *cobra.Command {
	var (
		category string
		query    string
		status   string
		page     int
		size     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of a category's participants",
		Long: `Print one page of a category's participants, with participants still
waiting for a bib first and the rest ordered by name.

Status filters:
  complete         bib assigned, payment proof and both ID photos uploaded
  bib_pending      no bib yet
  docs_incomplete  payment proof or an ID photo missing`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if category == "" {
				return errors.New("--categoria is required")
			}
			filter, ok := inscritos.ParseStatusFilter(status)
			if !ok {
				return fmt.Errorf("unknown status %q", status)
			}

			src, defaultSize, err := open()
			if err != nil {
				return err
			}
			if size <= 0 {
				size = defaultSize
			}

			ps, err := src.ListParticipants(cmd.Context(), inscritos.ID(category))
			if err != nil {
				return fmt.Errorf("listing participants: %w", err)
			}

			list := view.NewList(size)
			list.SetParticipants(inscritos.ID(category), ps)
			list.SetQuery(query)
			list.SetStatus(filter)
			list.GoTo(page)

			now := time.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DORSAL\tNOMBRE\tCI\tEQUIPO\tEDAD\tESTADO")
			for _, p := range list.Page() {
				bib := p.BibText()
				if bib == "" {
					bib = "-"
				}
				age := "-"
				if a, ok := p.Age(now); ok {
					age = fmt.Sprint(a)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					bib, p.FullName(), p.CI, p.Equipo, age, p.Completeness(now).Badge)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\npage %d/%d, %d of %d participants\n",
				list.CurrentPage(), list.TotalPages(), list.FilteredCount(), list.Total())
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "categoria", "c", "", "category id")
	cmd.Flags().StringVarP(&query, "q", "q", "", "search name, CI, bib, team or community")
	cmd.Flags().StringVarP(&status, "status", "s", "", "complete, bib_pending or docs_incomplete")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().IntVar(&size, "page-size", 0, "items per page (default PAGE_SIZE)")
	return cmd
}

func newCategoriesCmd(open func() (source, int, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "categorias",
		Short: "List race categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, _, err := open()
			if err != nil {
				return err
			}
			cats, err := src.ListCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing categories: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNOMBRE")
			for _, c := range cats {
				fmt.Fprintf(w, "%s\t%s\n", c.ID, c.Nombre)
			}
			return w.Flush()
		},
	}
}

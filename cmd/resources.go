package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/meysamhadeli/solid/utils"
	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Work with website pages",
}

var pagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the company's pages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		session, err := rootDependencies.Session()
		if err != nil {
			return err
		}

		stop := rootDependencies.startSpinner("Loading pages...")
		pages, err := rootDependencies.Client(session).ListPages(cmd.Context())
		stop()
		if err != nil {
			return err
		}

		table := utils.Table{Header: []string{"ID", "TITLE", "SLUG", "TYPE", "PUBLISHED"}}
		for _, page := range pages {
			table.Rows = append(table.Rows, []string{
				strconv.FormatInt(page.ID, 10),
				page.Title,
				page.Slug,
				page.PageType,
				yesNo(page.IsPublished),
			})
		}
		return rootDependencies.Render(pages, table)
	},
}

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Work with knowledge-base articles",
}

var kbSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search knowledge-base articles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		session, err := rootDependencies.Session()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		stop := rootDependencies.startSpinner("Searching...")
		entries, err := rootDependencies.Client(session).SearchKB(cmd.Context(), strings.Join(args, " "), limit)
		stop()
		if err != nil {
			return err
		}

		table := utils.Table{Header: []string{"ID", "TITLE", "CATEGORY", "EXCERPT"}}
		for _, entry := range entries {
			table.Rows = append(table.Rows, []string{
				strconv.FormatInt(entry.ID, 10),
				entry.Title,
				entry.Category,
				excerpt(entry.Content, 60),
			})
		}
		return rootDependencies.Render(entries, table)
	},
}

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Work with the service catalog",
}

var servicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the company's services",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		session, err := rootDependencies.Session()
		if err != nil {
			return err
		}

		stop := rootDependencies.startSpinner("Loading services...")
		services, err := rootDependencies.Client(session).ListServices(cmd.Context())
		stop()
		if err != nil {
			return err
		}

		table := utils.Table{Header: []string{"ID", "NAME", "CATEGORY", "PRICE", "MINUTES", "ACTIVE"}}
		for _, service := range services {
			table.Rows = append(table.Rows, []string{
				strconv.FormatInt(service.ID, 10),
				service.Name,
				service.Category,
				fmt.Sprintf("%.2f", service.Price),
				strconv.Itoa(service.DurationMinutes),
				yesNo(service.IsActive),
			})
		}
		return rootDependencies.Render(services, table)
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Work with the product catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the company's products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		session, err := rootDependencies.Session()
		if err != nil {
			return err
		}

		stop := rootDependencies.startSpinner("Loading products...")
		products, err := rootDependencies.Client(session).ListProducts(cmd.Context())
		stop()
		if err != nil {
			return err
		}

		table := utils.Table{Header: []string{"ID", "NAME", "SKU", "CATEGORY", "PRICE", "ACTIVE"}}
		for _, product := range products {
			table.Rows = append(table.Rows, []string{
				strconv.FormatInt(product.ID, 10),
				product.Name,
				product.SKU,
				product.Category,
				fmt.Sprintf("%.2f", product.Price),
				yesNo(product.IsActive),
			})
		}
		return rootDependencies.Render(products, table)
	},
}

func init() {
	kbSearchCmd.Flags().IntP("limit", "l", 20, "Maximum number of results")

	pagesCmd.AddCommand(pagesListCmd)
	kbCmd.AddCommand(kbSearchCmd)
	servicesCmd.AddCommand(servicesListCmd)
	productsCmd.AddCommand(productsListCmd)

	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(kbCmd)
	rootCmd.AddCommand(servicesCmd)
	rootCmd.AddCommand(productsCmd)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// excerpt returns the first line of text cut to max runes.
func excerpt(text string, max int) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	runes := []rune(line)
	if len(runes) <= max {
		return line
	}
	return string(runes[:max-1]) + "…"
}

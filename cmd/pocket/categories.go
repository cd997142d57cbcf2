package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage ledger categories",
		Long:  `List, add, update, and delete the categories transactions are classified under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())
	cmd.AddCommand(paletteCmd())

	return cmd
}

func paletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "Show suggested colors and icons for categories",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(cli.HeaderStyle.Render("Colors"))
			for _, color := range model.CategoryColors {
				swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
				fmt.Printf("  %s %s\n", swatch, color)
			}

			fmt.Println()
			fmt.Println(cli.HeaderStyle.Render("Icons"))
			themes := make([]string, 0, len(model.CategoryIcons))
			for theme := range model.CategoryIcons {
				themes = append(themes, theme)
			}
			sort.Strings(themes)
			for _, theme := range themes {
				fmt.Printf("  %-10s %s\n", theme, strings.Join(model.CategoryIcons[theme], ", "))
			}
		},
	}
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			session, err := newSession()
			if err != nil {
				return err
			}

			categories, err := session.Categories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'pocket categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Color"),
				cli.HeaderStyle.Render("Icon"))

			for _, cat := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", cat.ID, cat.Name, cat.Type, cat.Color, cat.Icon)
			}

			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var (
		categoryType  string
		categoryColor string
		categoryIcon  string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long:  `Create a new category on the ledger. The assigned identifier comes from the service.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			parsedType, err := model.ParseCategoryType(categoryType)
			if err != nil {
				return fmt.Errorf("unknown category type %q (valid: %s)", categoryType, joinCategoryTypes())
			}

			session, err := newSession()
			if err != nil {
				return err
			}

			created, err := session.CreateCategory(ctx, model.Category{
				Name:  args[0],
				Type:  parsedType,
				Color: categoryColor,
				Icon:  categoryIcon,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created category %q", created.Name)))
			if created.ID != "" {
				fmt.Println(cli.SubtleStyle.Render("  ID: " + created.ID))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&categoryType, "type", string(model.CategoryTypeExpense), "category type ("+joinCategoryTypes()+")")
	cmd.Flags().StringVar(&categoryColor, "color", model.DefaultCategoryColor, "hex color for the category")
	cmd.Flags().StringVar(&categoryIcon, "icon", model.DefaultCategoryIcon, "icon name for the category")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		categoryName  string
		categoryType  string
		categoryColor string
		categoryIcon  string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Long:  `Replace the fields of an existing category. Unspecified flags keep the cached value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			session, err := newSession()
			if err != nil {
				return err
			}

			categories, err := session.Categories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			var current *model.Category
			for i := range categories {
				if categories[i].ID == id {
					current = &categories[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("category with ID %s not found", id)
			}

			updated := *current
			if categoryName != "" {
				updated.Name = categoryName
			}
			if categoryType != "" {
				parsedType, err := model.ParseCategoryType(categoryType)
				if err != nil {
					return fmt.Errorf("unknown category type %q (valid: %s)", categoryType, joinCategoryTypes())
				}
				updated.Type = parsedType
			}
			if categoryColor != "" {
				updated.Color = categoryColor
			}
			if categoryIcon != "" {
				updated.Icon = categoryIcon
			}

			if err := session.UpdateCategory(ctx, updated); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated category %q", updated.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryName, "name", "", "new category name")
	cmd.Flags().StringVar(&categoryType, "type", "", "new category type ("+joinCategoryTypes()+")")
	cmd.Flags().StringVar(&categoryColor, "color", "", "new hex color")
	cmd.Flags().StringVar(&categoryIcon, "icon", "", "new icon name")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			session, err := newSession()
			if err != nil {
				return err
			}

			// Warm the cache so the deleted category's name is known.
			if _, err := session.Categories(ctx); err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			label, err := session.DeleteCategory(ctx, args[0])
			if err != nil {
				return err
			}

			if label == "" {
				label = args[0]
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category %q", label)))
			return nil
		},
	}
}

func joinCategoryTypes() string {
	types := model.CategoryTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

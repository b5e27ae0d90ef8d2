package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/kitlog/internal/models"
	"github.com/zulandar/kitlog/internal/stage"
	"github.com/zulandar/kitlog/internal/tracker"
)

func newAddCmd() *cobra.Command {
	var (
		configPath string
		opts       tracker.CreateOpts
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a new build",
		Long:  "Adds a kit to the tracker. Kit name and scale are required; the stage defaults to Backlog.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, configPath, opts)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&opts.KitName, "kit", "", "kit name (required)")
	cmd.Flags().StringVar(&opts.Scale, "scale", "", "scale, e.g. 1/144 (required)")
	cmd.Flags().StringVar(&opts.Grade, "grade", "High Grade", "grade label")
	cmd.Flags().StringVar(&opts.Status, "status", stage.Backlog, "starting stage")
	cmd.Flags().StringVar(&opts.Started, "started", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Target, "target", "", "target date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "free-form notes")
	return cmd
}

func runAdd(cmd *cobra.Command, configPath string, opts tracker.CreateOpts) error {
	// Reject bad input before touching storage.
	if err := tracker.Validate(opts); err != nil {
		return err
	}
	if opts.Status != "" {
		if label, ok := stage.Lookup(opts.Status); ok {
			opts.Status = label
		}
	}

	_, store, logger, err := openStore(cmd, configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	b, err := store.Create(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Logged build %s\n", b.ID)
	fmt.Fprintf(out, "Stage: %s (%s)\n", b.Status, stage.Position(stage.Index(b.Status)))
	return nil
}

func newListCmd() *cobra.Command {
	var (
		configPath string
		status     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List builds",
		Long:  "Lists builds ordered by stage, most recently updated first within a stage. Use --status to show one stage.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, configPath, status)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&status, "status", tracker.FilterAll, "stage to show, or \"all\"")
	return cmd
}

func runList(cmd *cobra.Command, configPath, status string) error {
	_, store, logger, err := openStore(cmd, configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()
	if err := store.SetFilter(status); err != nil {
		return err
	}

	v := store.View()
	out := cmd.OutOrStdout()
	if msg := v.EmptyMessage(); msg != "" {
		fmt.Fprintln(out, msg)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIT\tGRADE\tSCALE\tSTAGE\tPROGRESS\tTARGET\tUPDATED")
	for _, b := range v.Builds {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(b.ID), truncate(b.KitName, 32), orDash(b.Grade), b.Scale, b.Status,
			progressBar(b.Status, 10), tracker.FormatDate(b.Target), tracker.FormatTime(b.Touched()))
	}
	w.Flush()
	return nil
}

func newShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show build details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, configPath, args[0])
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func runShow(cmd *cobra.Command, configPath, ref string) error {
	_, store, logger, err := openStore(cmd, configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()
	b, err := resolveBuild(store, ref)
	if err != nil {
		return err
	}

	idx := stage.Index(b.Status)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:       %s\n", b.ID)
	fmt.Fprintf(out, "Kit:      %s\n", b.KitName)
	fmt.Fprintf(out, "Grade:    %s\n", orDash(b.Grade))
	fmt.Fprintf(out, "Scale:    %s\n", b.Scale)
	fmt.Fprintf(out, "Stage:    %s (%s)\n", stage.Resolve(b.Status), stage.Position(idx))
	fmt.Fprintf(out, "Progress: %s\n", progressBar(b.Status, 20))
	fmt.Fprintf(out, "Started:  %s\n", tracker.FormatDate(b.Started))
	fmt.Fprintf(out, "Target:   %s\n", tracker.FormatDate(b.Target))
	fmt.Fprintf(out, "Created:  %s\n", tracker.FormatTime(b.CreatedAt))
	fmt.Fprintf(out, "Updated:  %s\n", tracker.FormatTime(b.Touched()))

	notes := strings.TrimSpace(b.Notes)
	if notes == "" {
		notes = "No notes yet. Add some ideas!"
	}
	fmt.Fprintf(out, "\nNotes:\n%s\n", notes)
	return nil
}

func newUpdateCmd() *cobra.Command {
	var (
		configPath string
		kit        string
		grade      string
		scale      string
		status     string
		started    string
		target     string
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a build",
		Long:  "Updates only the fields whose flags are given. Pass an empty --started or --target to clear a date.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c tracker.Changes
			flags := cmd.Flags()

			if flags.Changed("kit") {
				if strings.TrimSpace(kit) == "" {
					return fmt.Errorf("kit name cannot be blank")
				}
				c.KitName = &kit
			}
			if flags.Changed("grade") {
				c.Grade = &grade
			}
			if flags.Changed("scale") {
				if strings.TrimSpace(scale) == "" {
					return fmt.Errorf("scale cannot be blank")
				}
				c.Scale = &scale
			}
			if flags.Changed("status") {
				label, ok := stage.Lookup(status)
				if !ok {
					return fmt.Errorf("unknown stage %q; valid stages: %s", status, strings.Join(stage.All(), ", "))
				}
				c.Status = &label
			}
			if flags.Changed("started") {
				if err := checkDate("started", started); err != nil {
					return err
				}
				c.Started = &started
			}
			if flags.Changed("target") {
				if err := checkDate("target", target); err != nil {
					return err
				}
				c.Target = &target
			}
			if flags.Changed("notes") {
				c.Notes = &notes
			}

			if c.IsEmpty() {
				return fmt.Errorf("nothing to update; pass at least one field flag")
			}
			return runUpdate(cmd, configPath, args[0], c)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&kit, "kit", "", "new kit name")
	cmd.Flags().StringVar(&grade, "grade", "", "new grade")
	cmd.Flags().StringVar(&scale, "scale", "", "new scale")
	cmd.Flags().StringVar(&status, "status", "", "new stage")
	cmd.Flags().StringVar(&started, "started", "", "new start date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&target, "target", "", "new target date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&notes, "notes", "", "new notes")
	return cmd
}

func runUpdate(cmd *cobra.Command, configPath, ref string, c tracker.Changes) error {
	_, store, logger, err := openStore(cmd, configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()
	b, err := resolveBuild(store, ref)
	if err != nil {
		return err
	}
	if err := store.Update(b.ID, c); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated build %s\n", b.ID)
	return nil
}

func newAdvanceCmd() *cobra.Command {
	return newStepCmd("advance <id>", "Move a build to the next stage", 1)
}

func newBackCmd() *cobra.Command {
	return newStepCmd("back <id>", "Move a build to the previous stage", -1)
}

func newStepCmd(use, short string, direction int) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStep(cmd, configPath, args[0], direction)
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func runStep(cmd *cobra.Command, configPath, ref string, direction int) error {
	_, store, logger, err := openStore(cmd, configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()
	b, err := resolveBuild(store, ref)
	if err != nil {
		return err
	}
	if err := store.AdvanceStage(b.ID, direction); err != nil {
		return err
	}

	after, _ := store.Get(b.ID)
	out := cmd.OutOrStdout()
	if after.Status == b.Status {
		fmt.Fprintf(out, "%s is already at %s\n", b.KitName, stage.Resolve(b.Status))
		return nil
	}
	fmt.Fprintf(out, "%s: %s → %s (%s)\n", b.KitName, stage.Resolve(b.Status), after.Status,
		stage.Position(stage.Index(after.Status)))
	return nil
}

func newDeleteCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a build from the tracker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, configPath, args[0], yes)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runDelete(cmd *cobra.Command, configPath, ref string, yes bool) error {
	_, store, logger, err := openStore(cmd, configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()
	b, err := resolveBuild(store, ref)
	if err != nil {
		return err
	}

	ok, err := confirm(cmd, "Remove this build from the tracker?", yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return nil
	}
	if err := store.Delete(b.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted build %s (%s)\n", b.ID, b.KitName)
	return nil
}

func newResetCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove every build",
		Long:  "Clears the whole tracker. Asks for confirmation unless --yes is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cmd, configPath, yes)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runReset(cmd *cobra.Command, configPath string, yes bool) error {
	_, store, logger, err := openStore(cmd, configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ok, err := confirm(cmd, "Remove every build saved on this device?", yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return nil
	}
	n := len(store.Builds())
	if err := store.ResetAll(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d builds.\n", n)
	return nil
}

func newSamplesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Replace all builds with demo data",
		Long:  "Overwrites the tracker with four sample builds. Existing builds are replaced without confirmation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, logger, err := openStore(cmd, configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()
			if err := store.LoadSamples(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d sample builds.\n", len(store.Builds()))
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func newSummaryCmd() *cobra.Command {
	var (
		configPath string
		byStage    bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show build counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, logger, err := openStore(cmd, configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()
			printSummary(cmd, store.Summary(), byStage)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVar(&byStage, "by-stage", false, "also count every stage")
	return cmd
}

func printSummary(cmd *cobra.Command, s tracker.Summary, byStage bool) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total Kits Logged\t%d\n", s.Total)
	fmt.Fprintf(w, "Snapping In Progress\t%d\n", s.SnapBuild)
	fmt.Fprintf(w, "Painting / Topcoat\t%d\n", s.PaintFinish)
	fmt.Fprintf(w, "Showcase Ready\t%d\n", s.ShowcaseReady)
	if byStage {
		fmt.Fprintln(w)
		for i, n := range s.ByStage {
			fmt.Fprintf(w, "%s\t%d\n", stage.Label(i), n)
		}
	}
	w.Flush()
}

func newStagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stages",
		Short: "List the workflow stages in order",
		Run: func(cmd *cobra.Command, args []string) {
			for i, s := range stage.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, s)
			}
		},
	}
}

// resolveBuild finds a build by full id or unique id prefix.
func resolveBuild(store *tracker.Store, ref string) (models.Build, error) {
	if b, ok := store.Get(ref); ok {
		return b, nil
	}
	var matches []models.Build
	for _, b := range store.Builds() {
		if strings.HasPrefix(b.ID, ref) {
			matches = append(matches, b)
		}
	}
	switch len(matches) {
	case 0:
		return models.Build{}, fmt.Errorf("build not found: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Build{}, fmt.Errorf("build id %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func checkDate(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if _, err := tracker.ParseDate(value); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Manage saved cube states",
	Long: `Commands for the cube state file and named snapshots in the database.

The state file (--state, default cube.rubiks) holds the working cube used by
scramble, solve and play. Named snapshots copy it into the database.`,
}

var stateSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the state file under a name",
	Args:  cobra.ExactArgs(1),
	RunE:  runStateSave,
}

var stateLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Copy a named state into the state file",
	Args:  cobra.ExactArgs(1),
	RunE:  runStateLoad,
}

var stateShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show the state file or a named state",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStateShow,
}

var stateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List named states",
	RunE:  runStateList,
}

var stateDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a named state",
	Args:  cobra.ExactArgs(1),
	RunE:  runStateDelete,
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateSaveCmd, stateLoadCmd, stateShowCmd, stateListCmd, stateDeleteCmd)
}

func runStateSave(cmd *cobra.Command, args []string) error {
	c, err := loadState()
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := storage.NewStateRepository(db).Save(args[0], c)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s as %q (%s)\n", cfg.StatePath, args[0], id)
	return nil
}

func runStateLoad(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	c, err := storage.NewStateRepository(db).Load(args[0])
	if err != nil {
		return err
	}
	if err := c.Save(cfg.StatePath); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	fmt.Printf("Loaded %q into %s\n", args[0], cfg.StatePath)
	return nil
}

func runStateShow(cmd *cobra.Command, args []string) error {
	var c *cube.Cube
	var label string
	if len(args) == 1 {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		if c, err = storage.NewStateRepository(db).Load(args[0]); err != nil {
			return err
		}
		label = args[0]
	} else {
		var err error
		if c, err = loadState(); err != nil {
			return err
		}
		label = cfg.StatePath
	}

	phase, err := solver.Detect(c)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(label))
	fmt.Println()
	fmt.Print(renderNet(c))
	fmt.Println()
	fmt.Printf("Phase:  %s\n", phase.DisplayName())
	fmt.Printf("Solved: %v\n", c.IsSolved())
	for id := cube.LayerOne; id <= cube.LayerThree; id++ {
		ok, err := c.LayerIsSolved(id)
		if err != nil {
			return err
		}
		fmt.Printf("Layer %d: %v\n", id+2, ok)
	}
	return nil
}

func runStateList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	states, err := storage.NewStateRepository(db).List()
	if err != nil {
		return err
	}

	if len(states) == 0 {
		fmt.Println("No saved states")
		fmt.Println("Save one with: cubesolver state save <name>")
		return nil
	}

	fmt.Printf("%-20s  %-20s  %-6s  %s\n", "Name", "Saved", "Solved", "ID")
	fmt.Println("--------------------  --------------------  ------  ------------------------------------")
	for _, s := range states {
		fmt.Printf("%-20s  %-20s  %-6v  %s\n", s.Name, s.CreatedAt.Local().Format("2006-01-02 15:04:05"), s.Solved, s.StateID)
	}
	return nil
}

func runStateDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.NewStateRepository(db).Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %q\n", args[0])
	return nil
}

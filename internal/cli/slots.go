package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/mealwiz/internal/session"
)

// slotValue is the JSON shape of one slot for get --json.
type slotValue struct {
	Slot  session.Slot    `json:"slot"`
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List the session slots",
	Long:  `List every slot of the wizard session with its storage key and value type.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos := session.Describe()
		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), infos)
		}

		rows := make([][]string, 0, len(infos))
		for _, info := range infos {
			rows = append(rows, []string{string(info.Slot), info.Key, info.Type})
		}
		PrintTable(cmd.OutOrStdout(), []string{"SLOT", "KEY", "TYPE"}, rows)
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <slot>",
	Short: "Print the stored value of a slot",
	Long: `Print the stored JSON value of a slot.

The slot may be given by name (selectedTags) or by storage key
(wizard_selectedTags). Exits with an error when the slot is not set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := session.ParseSlot(args[0])
		if err != nil {
			return err
		}

		eng, release, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer release()

		raw, ok := eng.Store().Get(slot)
		if !ok {
			return fmt.Errorf("%s: %w", slot, ErrSlotNotSet)
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), slotValue{
				Slot:  slot,
				Key:   slot.Key(),
				Value: json.RawMessage(raw),
			})
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), raw)
		return nil
	},
}

// textSlots accept a bare string on the command line.
var textSlots = map[session.Slot]bool{
	session.SlotAllergensDescription: true,
	session.SlotClientID:             true,
}

var setCmd = &cobra.Command{
	Use:   "set <slot> <json>",
	Short: "Overwrite a slot",
	Long: `Overwrite a slot with a JSON value.

The value is checked against the slot's type before anything is written.
Text slots (allergensDescription, clientId) also accept a bare string.

Examples:
  mealwiz set selectedTags '["vegan","quick"]'
  mealwiz set step 3
  mealwiz set clientId client-42`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := session.ParseSlot(args[0])
		if err != nil {
			return err
		}

		eng, release, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer release()

		store := eng.Store()
		value := args[1]
		if textSlots[slot] && !json.Valid([]byte(value)) {
			err = store.Set(slot, value)
		} else {
			err = store.SetJSON(slot, value)
		}
		if err != nil {
			return err
		}

		if jsonOutput {
			raw, _ := store.Get(slot)
			return outputJSON(cmd.OutOrStdout(), slotValue{Slot: slot, Key: slot.Key(), Value: json.RawMessage(raw)})
		}
		PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Set %s", slot))
		return nil
	},
}

var unsetCmd = &cobra.Command{
	Use:   "unset client",
	Short: "Clear the client id",
	Long: `Record that the plan is not for a particular client.

Only the client id can be unset on its own; use 'mealwiz clear' to reset the
whole session.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] != "client" {
			slot, err := session.ParseSlot(args[0])
			if err != nil {
				return err
			}
			if slot != session.SlotClientID {
				return fmt.Errorf("%w: only the client id can be unset, use 'mealwiz clear' to reset the session", session.ErrInvalidValue)
			}
		}

		eng, release, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer release()

		if err := eng.Store().ClearClientID(); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), map[string]any{"slot": session.SlotClientID, "cleared": true})
		}
		PrintSuccess(cmd.OutOrStdout(), "Cleared client id")
		return nil
	},
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modu-ai/shed/internal/defs"
	"github.com/modu-ai/shed/internal/lockfile"
)

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Write or verify the input lock file",
	Long: `Record every declared input pin plus a digest of the descriptor's
canonical form in shed.lock. With --check the existing lock is
verified against the current descriptor instead of rewritten.`,
	Args: cobra.NoArgs,
	RunE: runLock,
}

func init() {
	rootCmd.AddCommand(lockCmd)

	lockCmd.Flags().Bool("check", false, "Verify the existing lock instead of rewriting it")
}

func runLock(cmd *cobra.Command, _ []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	d, err := deps.Descriptor.Load(root)
	if err != nil {
		printDescriptorError(cmd, err)
		return err
	}

	if getBoolFlag(cmd, "check") {
		lk, err := lockfile.Read(root)
		if err != nil {
			if errors.Is(err, lockfile.ErrLockNotFound) {
				return fmt.Errorf("%s does not exist, run \"shed lock\" first", defs.LockYAML)
			}
			return err
		}
		if err := lockfile.Verify(d, lk); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s is stale, run \"shed lock\" to refresh\n",
				deps.Theme.Error.Render("✗"), defs.LockYAML)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s is up to date (digest %s)\n",
			deps.Theme.Success.Render("✓"), defs.LockYAML, truncDigest(lk.Digest))
		return nil
	}

	lk, err := lockfile.Generate(d)
	if err != nil {
		return err
	}
	if err := lockfile.Write(root, lk); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d input(s), digest %s\n",
		defs.LockYAML, len(lk.Inputs), truncDigest(lk.Digest))
	return nil
}

func truncDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}

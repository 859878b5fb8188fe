package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/buildreqmin/buildreqmin/pkg/compare"
	"github.com/buildreqmin/buildreqmin/pkg/driver"
	"github.com/buildreqmin/buildreqmin/pkg/minimize"
	"github.com/buildreqmin/buildreqmin/pkg/mockroot"
	"github.com/buildreqmin/buildreqmin/pkg/rpmapi"
	"github.com/buildreqmin/buildreqmin/pkg/rpmhdr"
)

func runMinimize(srcPath string) error {
	if err := configureLogging(rootopts.logLevel); err != nil {
		return err
	}
	if rootopts.rootProfile == "" {
		return fmt.Errorf("--root is required")
	}

	profile, err := mockroot.LoadProfile(rootopts.rootProfile)
	if err != nil {
		return err
	}

	src, err := rpmhdr.LoadSourcePackage(srcPath)
	if err != nil {
		return err
	}
	log.Infof("loaded %s: %d declared build requirements", src.Filename(), len(src.Requirements))

	workDir := rootopts.workDir
	if workDir == "" {
		workDir, err = os.MkdirTemp("", "buildreqmin-")
		if err != nil {
			return fmt.Errorf("failed to create workdir: %w", err)
		}
		if !rootopts.noClean {
			defer os.RemoveAll(workDir)
		}
	}

	content := compare.New(compare.NewMagicClassifier(), compare.NewExecExternal())
	d := driver.New(driver.Options{
		Profile:       profile,
		NoClean:       rootopts.noClean,
		ReproduceOnly: rootopts.reproduceOnly,
		AssumeCompose: rootopts.assumeCompose,
		WorkDir:       workDir,
	}, content)

	ctx := context.Background()
	result, err := d.Run(ctx, src)
	if err != nil {
		if _, ok := err.(*driver.NotReproducibleError); ok {
			log.Errorf("%v", err)
			os.Exit(1)
		}
		return err
	}
	if result == nil {
		// --reproduce-only
		return nil
	}

	printResult(src.Filename(), result)
	return nil
}

func printResult(srcName string, result *minimize.Result) {
	if len(result.Unneeded) == 0 {
		return
	}
	fmt.Printf("%s:%s\n", srcName, joinRequirements(result.Unneeded))
}

func joinRequirements(reqs []rpmapi.Requirement) string {
	names := rpmapi.Strings(reqs)
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

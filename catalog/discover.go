package catalog

import (
	"path/filepath"
	"sync"

	"github.com/boyter/gocodewalker"

	"github.com/cfgprops/cfgprops"
)

// Discover walks a workspace for configuration metadata files, respecting
// .gitignore. Results come back in walk order.
func Discover(root string) ([]string, error) {
	fileListQueue := make(chan *gocodewalker.File, 100)

	fileWalker := gocodewalker.NewFileWalker(root, fileListQueue)
	fileWalker.AllowListExtensions = []string{"json"}

	var walkErr error
	fileWalker.SetErrorHandler(func(e error) bool {
		walkErr = e
		return true
	})

	var (
		wg    sync.WaitGroup
		found []string
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for f := range fileListQueue {
			switch filepath.Base(f.Location) {
			case cfgprops.MetadataFileName, cfgprops.AdditionalMetadataFileName:
				found = append(found, f.Location)
			}
		}
	}()

	if err := fileWalker.Start(); err != nil {
		return nil, err
	}

	wg.Wait()

	return found, walkErr
}

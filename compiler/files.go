package compiler

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gaborage/swaggelize/logger"
	"github.com/gaborage/swaggelize/model"
	"github.com/gaborage/swaggelize/service"
)

// loadModels extracts every model defined under dir, visiting files in
// lexical order. A missing directory or an unreadable/unparseable file
// degrades to an empty contribution, never an abort.
func (c *Compiler) loadModels(log logger.Logger, dir string) ([]*model.Model, error) {
	extractor := model.NewExtractor(log)
	var models []*model.Model
	for _, path := range listFiles(log, dir, ".js") {
		src, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("model file unreadable, skipped")
			continue
		}
		extracted, err := extractor.Extract(filepath.Base(path), src)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("model file unparseable, skipped")
			continue
		}
		models = append(models, extracted...)
	}
	return models, nil
}

// loadServices parses every service descriptor under the configured
// directory. Unlike model files, a malformed descriptor is a
// configuration error: it names operations the caller expects to see.
func (c *Compiler) loadServices(log logger.Logger, in Input) ([]*service.Service, error) {
	var services []*service.Service
	for _, path := range listFiles(log, in.ServicesDir, ".yaml", ".yml") {
		content, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("service file unreadable, skipped")
			continue
		}
		svc, err := service.Parse(content, in.Routes, in.RoutePrefix, log)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, nil
}

func listFiles(log logger.Logger, dir string, extensions ...string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("input directory unreadable")
		return nil
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, allowed := range extensions {
			if ext == allowed {
				files = append(files, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}
	sort.Strings(files)
	return files
}

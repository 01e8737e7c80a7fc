package facade

import (
	"context"

	"jenkins-agent/src/jenkins"
	"jenkins-agent/src/payload"
)

// ConnectionInfo is the connection check outcome.
type ConnectionInfo struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	URL      string `json:"url"`
	Username string `json:"username"`
}

// CheckConnection verifies the server is reachable with the configured
// credentials and reports its version.
func (f *Facade) CheckConnection(ctx context.Context) (*ConnectionInfo, error) {
	version, err := f.client.Version(ctx)
	if err != nil {
		return nil, wrap(err, ResourceServer, f.client.BaseURL())
	}
	return &ConnectionInfo{
		Status:   "connected",
		Version:  version,
		URL:      f.client.BaseURL(),
		Username: f.client.Username(),
	}, nil
}

// Version reports the server version.
func (f *Facade) Version(ctx context.Context) (string, error) {
	v, err := f.client.Version(ctx)
	return v, wrap(err, ResourceServer, f.client.BaseURL())
}

// SystemInfo reports node and executor details for the whole server.
func (f *Facade) SystemInfo(ctx context.Context) (*jenkins.ComputerSet, error) {
	set, err := f.client.Computers(ctx)
	if err != nil {
		return nil, wrap(err, ResourceServer, f.client.BaseURL())
	}
	return set, nil
}

// QuietDown puts the server in quiet-down mode.
func (f *Facade) QuietDown(ctx context.Context) (Result, error) {
	if err := f.client.QuietDown(ctx); err != nil {
		return Result{}, wrap(err, ResourceServer, f.client.BaseURL())
	}
	return ok("server is now in quiet-down mode"), nil
}

// CancelQuietDown leaves quiet-down mode.
func (f *Facade) CancelQuietDown(ctx context.Context) (Result, error) {
	if err := f.client.CancelQuietDown(ctx); err != nil {
		return Result{}, wrap(err, ResourceServer, f.client.BaseURL())
	}
	return ok("quiet-down mode canceled"), nil
}

// Restart restarts the server. A safe restart waits for running builds to
// finish before going down.
func (f *Facade) Restart(ctx context.Context, safe bool) (Result, error) {
	if err := f.client.Restart(ctx, safe); err != nil {
		return Result{}, wrap(err, ResourceServer, f.client.BaseURL())
	}
	if safe {
		return ok("safe restart initiated"), nil
	}
	return ok("restart initiated"), nil
}

// RunScript executes a Groovy script on the controller and returns its
// output.
func (f *Facade) RunScript(ctx context.Context, script string) (string, error) {
	out, err := f.client.RunScript(ctx, script)
	return out, wrap(err, ResourceServer, f.client.BaseURL())
}

// Plugins lists installed plugins.
func (f *Facade) Plugins(ctx context.Context, depth int) ([]jenkins.Plugin, error) {
	if depth <= 0 {
		depth = 1
	}
	plugins, err := f.client.Plugins(ctx, depth)
	if err != nil {
		return nil, wrap(err, ResourcePlugin, "")
	}
	return plugins, nil
}

// PluginInfo fetches a single plugin by short name.
func (f *Facade) PluginInfo(ctx context.Context, shortName string) (*jenkins.Plugin, error) {
	plugins, err := f.client.Plugins(ctx, 2)
	if err != nil {
		return nil, wrap(err, ResourcePlugin, shortName)
	}
	for i := range plugins {
		if plugins[i].ShortName == shortName {
			return &plugins[i], nil
		}
	}
	return nil, notFound(ResourcePlugin, shortName)
}

// InstallPlugin asks the plugin manager to install a plugin, optionally
// pinned to a version. Installation proceeds asynchronously on the server.
func (f *Facade) InstallPlugin(ctx context.Context, shortName, version string) (Result, error) {
	doc, err := payload.PluginInstallXML(shortName, version)
	if err != nil {
		return Result{}, wrap(err, ResourcePlugin, shortName)
	}
	if err := f.client.InstallPlugin(ctx, doc); err != nil {
		return Result{}, wrap(err, ResourcePlugin, shortName)
	}
	return ok("plugin %s installation initiated; it may take a while to complete", shortName), nil
}

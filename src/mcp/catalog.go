package mcp

import "fmt"

// catalog is the complete set of tools the server must expose. Startup fails
// if any registration drifts from it.
var catalog = []string{
	"check_jenkins_connection",
	"get_jenkins_version",
	"get_jenkins_system_info",
	"restart_jenkins",
	"quiet_down_jenkins",
	"cancel_quiet_down_jenkins",
	"run_groovy_script",
	"list_plugins",
	"get_plugin_info",
	"install_plugin",

	"list_jobs",
	"get_job_info",
	"get_job_config",
	"update_job_config",
	"create_job",
	"delete_job",
	"copy_job",
	"enable_job",
	"disable_job",
	"rename_job",
	"create_folder",
	"search_jobs",

	"build_job",
	"get_build_info",
	"get_last_build_info",
	"get_last_successful_build_info",
	"get_build_console_output",
	"stop_build",
	"get_build_test_results",
	"get_build_history",

	"get_queue_info",
	"get_queue_item",
	"cancel_queue_item",

	"list_nodes",
	"get_node_info",
	"create_node",
	"delete_node",
	"enable_node",
	"disable_node",

	"list_views",
	"get_view_info",
	"create_view",
	"delete_view",
	"add_job_to_view",
	"remove_job_from_view",

	"list_credentials",
	"get_credential_domains",
	"create_credential",
	"delete_credential",
}

// Catalog returns the expected tool names.
func Catalog() []string {
	out := make([]string, len(catalog))
	copy(out, catalog)
	return out
}

// validateCatalog checks the registered tools against the catalog, both ways.
func validateCatalog(registered []string) error {
	want := make(map[string]bool, len(catalog))
	for _, name := range catalog {
		want[name] = true
	}

	got := make(map[string]bool, len(registered))
	for _, name := range registered {
		if got[name] {
			return fmt.Errorf("tool %q registered twice", name)
		}
		got[name] = true
		if !want[name] {
			return fmt.Errorf("tool %q is not in the catalog", name)
		}
	}

	for _, name := range catalog {
		if !got[name] {
			return fmt.Errorf("catalog tool %q is not registered", name)
		}
	}

	return nil
}

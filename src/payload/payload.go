// Package payload renders the request bodies required by Jenkins endpoints
// that expect a specific encoded document: folder and view config.xml,
// credential and node creation forms, plugin install directives.
//
// Builders are pure functions: the same typed input always yields the same
// body. Caller-supplied text is escaped through encoding/xml or
// encoding/json marshalling, never string interpolation, so a name like
// `a<b&"c"` can never produce a malformed document. Closed enumerations
// (credential kind, view type, launcher kind) are validated here, before any
// network call is made.
package payload

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
)

// ErrUnsupportedKind marks a value outside one of the closed enumerations.
var ErrUnsupportedKind = errors.New("unsupported kind")

// View types accepted by ViewForm.
const (
	ViewTypeList = "list"
	ViewTypeMy   = "my"
)

// Credential kinds accepted by CredentialForm.
const (
	CredentialUsernamePassword = "usernamePassword"
	CredentialString           = "string"
	CredentialSSHPrivateKey    = "sshUserPrivateKey"
)

// Launcher kinds accepted by NodeForm.
const (
	LauncherJNLP    = "jnlp"
	LauncherSSH     = "ssh"
	LauncherCommand = "command"
)

type folderConfig struct {
	XMLName       xml.Name `xml:"com.cloudbees.hudson.plugins.folder.Folder"`
	Plugin        string   `xml:"plugin,attr"`
	Description   string   `xml:"description"`
	Properties    struct{} `xml:"properties"`
	FolderViews   struct{} `xml:"folderViews"`
	HealthMetrics struct{} `xml:"healthMetrics"`
}

// FolderXML renders the config.xml for a new folder.
func FolderXML(description string) ([]byte, error) {
	doc := folderConfig{Plugin: "cloudbees-folder"}
	doc.Description = description
	return marshalDoc(doc)
}

type listViewConfig struct {
	XMLName         xml.Name `xml:"hudson.model.ListView"`
	Name            string   `xml:"name"`
	FilterExecutors bool     `xml:"filterExecutors"`
	FilterQueue     bool     `xml:"filterQueue"`
	Properties      classed  `xml:"properties"`
	JobNames        struct {
		Comparator classed `xml:"comparator"`
	} `xml:"jobNames"`
	JobFilters struct{}   `xml:"jobFilters"`
	Columns    viewColumn `xml:"columns"`
	Recurse    bool       `xml:"recurse"`
}

type myViewConfig struct {
	XMLName         xml.Name `xml:"hudson.model.MyView"`
	Name            string   `xml:"name"`
	FilterExecutors bool     `xml:"filterExecutors"`
	FilterQueue     bool     `xml:"filterQueue"`
	Properties      classed  `xml:"properties"`
}

type classed struct {
	Class string `xml:"class,attr"`
}

type viewColumn struct {
	Status      struct{} `xml:"hudson.views.StatusColumn"`
	Weather     struct{} `xml:"hudson.views.WeatherColumn"`
	Job         struct{} `xml:"hudson.views.JobColumn"`
	LastSuccess struct{} `xml:"hudson.views.LastSuccessColumn"`
	LastFailure struct{} `xml:"hudson.views.LastFailureColumn"`
	Duration    struct{} `xml:"hudson.views.LastDurationColumn"`
	BuildButton struct{} `xml:"hudson.views.BuildButtonColumn"`
}

// viewMode maps a view type onto the Jenkins view class.
func viewMode(viewType string) (string, error) {
	switch viewType {
	case ViewTypeList:
		return "hudson.model.ListView", nil
	case ViewTypeMy:
		return "hudson.model.MyView", nil
	}
	return "", fmt.Errorf("%w: view type %q", ErrUnsupportedKind, viewType)
}

// ViewXML renders the config.xml for a new view of the given type.
func ViewXML(name, viewType string) ([]byte, error) {
	switch viewType {
	case ViewTypeList:
		doc := listViewConfig{Name: name}
		doc.Properties.Class = "hudson.model.View$PropertyList"
		doc.JobNames.Comparator.Class = "hudson.util.CaseInsensitiveComparator"
		return marshalDoc(doc)
	case ViewTypeMy:
		doc := myViewConfig{Name: name}
		doc.Properties.Class = "hudson.model.View$PropertyList"
		return marshalDoc(doc)
	}
	return nil, fmt.Errorf("%w: view type %q", ErrUnsupportedKind, viewType)
}

// ViewForm renders the createView form submission for a new view.
func ViewForm(name, viewType string) (url.Values, error) {
	mode, err := viewMode(viewType)
	if err != nil {
		return nil, err
	}
	meta, err := json.Marshal(map[string]string{"name": name, "mode": mode})
	if err != nil {
		return nil, err
	}
	return url.Values{
		"name":   {name},
		"mode":   {mode},
		"Submit": {"OK"},
		"json":   {string(meta)},
	}, nil
}

// CredentialSpec is the typed input for credential creation. Data carries
// the kind-specific secret fields (write-only from the agent's perspective).
type CredentialSpec struct {
	Kind        string
	ID          string
	Description string
	Data        map[string]string
}

// CredentialForm renders the createCredentials form submission for the spec.
// An unsupported kind fails before any body is built.
func CredentialForm(spec CredentialSpec) (url.Values, error) {
	cred := map[string]interface{}{
		"scope":       "GLOBAL",
		"id":          spec.ID,
		"description": spec.Description,
	}

	switch spec.Kind {
	case CredentialUsernamePassword:
		cred["stapler-class"] = "com.cloudbees.plugins.credentials.impl.UsernamePasswordCredentialsImpl"
		cred["username"] = spec.Data["username"]
		cred["password"] = spec.Data["password"]
	case CredentialString:
		cred["stapler-class"] = "org.jenkinsci.plugins.plaincredentials.impl.StringCredentialsImpl"
		cred["secret"] = spec.Data["secret"]
	case CredentialSSHPrivateKey:
		cred["stapler-class"] = "com.cloudbees.jenkins.plugins.sshcredentials.impl.BasicSSHUserPrivateKey"
		cred["username"] = spec.Data["username"]
		cred["privateKeySource"] = map[string]interface{}{
			"stapler-class": "com.cloudbees.jenkins.plugins.sshcredentials.impl.BasicSSHUserPrivateKey$DirectEntryPrivateKeySource",
			"privateKey":    spec.Data["privateKey"],
		}
		if passphrase, ok := spec.Data["passphrase"]; ok {
			cred["passphrase"] = passphrase
		}
	default:
		return nil, fmt.Errorf("%w: credential kind %q", ErrUnsupportedKind, spec.Kind)
	}

	body, err := json.Marshal(map[string]interface{}{
		"": "0",
		"credentials": cred,
	})
	if err != nil {
		return nil, err
	}
	return url.Values{"json": {string(body)}}, nil
}

// NodeSpec is the typed input for node creation.
type NodeSpec struct {
	Name           string
	Description    string
	Executors      int
	RemoteFS       string
	Labels         string
	Exclusive      bool
	Launcher       string
	LauncherParams map[string]string
}

// NodeForm renders the doCreateItem form submission for a new agent node.
// An unsupported launcher kind fails before any body is built.
func NodeForm(spec NodeSpec) (url.Values, error) {
	launcher := map[string]interface{}{}
	for k, v := range spec.LauncherParams {
		launcher[k] = v
	}
	switch spec.Launcher {
	case LauncherJNLP:
		launcher["stapler-class"] = "hudson.slaves.JNLPLauncher"
	case LauncherSSH:
		launcher["stapler-class"] = "hudson.plugins.sshslaves.SSHLauncher"
	case LauncherCommand:
		launcher["stapler-class"] = "hudson.slaves.CommandLauncher"
	default:
		return nil, fmt.Errorf("%w: launcher kind %q", ErrUnsupportedKind, spec.Launcher)
	}

	mode := "NORMAL"
	if spec.Exclusive {
		mode = "EXCLUSIVE"
	}
	executors := spec.Executors
	if executors <= 0 {
		executors = 1
	}

	inner := map[string]interface{}{
		"name":               spec.Name,
		"nodeDescription":    spec.Description,
		"numExecutors":       executors,
		"remoteFS":           spec.RemoteFS,
		"labelString":        spec.Labels,
		"mode":               mode,
		"type":               "hudson.slaves.DumbSlave$DescriptorImpl",
		"retentionStrategy":  map[string]interface{}{"stapler-class": "hudson.slaves.RetentionStrategy$Always"},
		"nodeProperties":     map[string]interface{}{"stapler-class-bag": "true"},
		"launcher":           launcher,
	}
	body, err := json.Marshal(inner)
	if err != nil {
		return nil, err
	}

	return url.Values{
		"name": {spec.Name},
		"type": {"hudson.slaves.DumbSlave$DescriptorImpl"},
		"json": {string(body)},
	}, nil
}

type pluginInstall struct {
	XMLName xml.Name `xml:"jenkins"`
	Install struct {
		Plugin string `xml:"plugin,attr"`
	} `xml:"install"`
}

// PluginInstallXML renders the installNecessaryPlugins document for a plugin,
// optionally pinned to a version.
func PluginInstallXML(shortName, version string) ([]byte, error) {
	doc := pluginInstall{}
	doc.Install.Plugin = shortName
	if version != "" {
		doc.Install.Plugin = shortName + "@" + version
	}
	return marshalDoc(doc)
}

// marshalDoc marshals an XML document with the standard header.
func marshalDoc(doc interface{}) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

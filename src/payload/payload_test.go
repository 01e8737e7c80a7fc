package payload

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"strings"
	"testing"
)

func TestFolderXMLEscapesDescription(t *testing.T) {
	doc, err := FolderXML(`deploys <prod> & "staging"`)
	if err != nil {
		t.Fatalf("FolderXML() error = %v", err)
	}

	var parsed struct {
		XMLName     xml.Name `xml:"com.cloudbees.hudson.plugins.folder.Folder"`
		Description string   `xml:"description"`
	}
	if err := xml.Unmarshal(doc, &parsed); err != nil {
		t.Fatalf("FolderXML() produced malformed XML: %v\n%s", err, doc)
	}
	if parsed.Description != `deploys <prod> & "staging"` {
		t.Errorf("description round-trip = %q", parsed.Description)
	}
}

func TestViewXML(t *testing.T) {
	tests := []struct {
		name     string
		viewType string
		wantRoot string
	}{
		{name: "list view", viewType: ViewTypeList, wantRoot: "hudson.model.ListView"},
		{name: "my view", viewType: ViewTypeMy, wantRoot: "hudson.model.MyView"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ViewXML("ops & <infra>", tt.viewType)
			if err != nil {
				t.Fatalf("ViewXML() error = %v", err)
			}

			var parsed struct {
				Name string `xml:"name"`
			}
			if err := xml.Unmarshal(doc, &parsed); err != nil {
				t.Fatalf("ViewXML() produced malformed XML: %v", err)
			}
			if parsed.Name != "ops & <infra>" {
				t.Errorf("name round-trip = %q", parsed.Name)
			}
			if !strings.Contains(string(doc), "<"+tt.wantRoot+">") {
				t.Errorf("ViewXML() root element missing %q:\n%s", tt.wantRoot, doc)
			}
		})
	}
}

func TestViewXMLUnsupportedType(t *testing.T) {
	if _, err := ViewXML("x", "nested"); !errors.Is(err, ErrUnsupportedKind) {
		t.Errorf("ViewXML() error = %v, want %v", err, ErrUnsupportedKind)
	}
}

func TestViewForm(t *testing.T) {
	form, err := ViewForm("dashboard", ViewTypeList)
	if err != nil {
		t.Fatalf("ViewForm() error = %v", err)
	}
	if form.Get("name") != "dashboard" {
		t.Errorf("name = %q", form.Get("name"))
	}
	if form.Get("mode") != "hudson.model.ListView" {
		t.Errorf("mode = %q", form.Get("mode"))
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(form.Get("json")), &meta); err != nil {
		t.Fatalf("json field is not valid JSON: %v", err)
	}
	if meta["name"] != "dashboard" {
		t.Errorf("json name = %q", meta["name"])
	}
}

func TestViewFormUnsupportedType(t *testing.T) {
	if _, err := ViewForm("x", "pipeline"); !errors.Is(err, ErrUnsupportedKind) {
		t.Errorf("ViewForm() error = %v, want %v", err, ErrUnsupportedKind)
	}
}

func TestCredentialFormUsernamePassword(t *testing.T) {
	form, err := CredentialForm(CredentialSpec{
		Kind:        CredentialUsernamePassword,
		ID:          "deploy-key",
		Description: "deploy account",
		Data:        map[string]string{"username": "deployer", "password": `p@ss"word`},
	})
	if err != nil {
		t.Fatalf("CredentialForm() error = %v", err)
	}

	var body struct {
		Credentials map[string]interface{} `json:"credentials"`
	}
	if err := json.Unmarshal([]byte(form.Get("json")), &body); err != nil {
		t.Fatalf("json field is not valid JSON: %v", err)
	}
	if body.Credentials["id"] != "deploy-key" {
		t.Errorf("id = %v", body.Credentials["id"])
	}
	if body.Credentials["username"] != "deployer" {
		t.Errorf("username = %v", body.Credentials["username"])
	}
	if body.Credentials["password"] != `p@ss"word` {
		t.Errorf("password round-trip = %v", body.Credentials["password"])
	}
	if body.Credentials["stapler-class"] != "com.cloudbees.plugins.credentials.impl.UsernamePasswordCredentialsImpl" {
		t.Errorf("stapler-class = %v", body.Credentials["stapler-class"])
	}
}

func TestCredentialFormString(t *testing.T) {
	form, err := CredentialForm(CredentialSpec{
		Kind: CredentialString,
		ID:   "token",
		Data: map[string]string{"secret": "s3cr3t"},
	})
	if err != nil {
		t.Fatalf("CredentialForm() error = %v", err)
	}

	var body struct {
		Credentials map[string]interface{} `json:"credentials"`
	}
	if err := json.Unmarshal([]byte(form.Get("json")), &body); err != nil {
		t.Fatalf("json field is not valid JSON: %v", err)
	}
	if body.Credentials["secret"] != "s3cr3t" {
		t.Errorf("secret = %v", body.Credentials["secret"])
	}
}

func TestCredentialFormUnsupportedKind(t *testing.T) {
	_, err := CredentialForm(CredentialSpec{Kind: "certificate", ID: "x"})
	if !errors.Is(err, ErrUnsupportedKind) {
		t.Errorf("CredentialForm() error = %v, want %v", err, ErrUnsupportedKind)
	}
}

func TestNodeForm(t *testing.T) {
	form, err := NodeForm(NodeSpec{
		Name:      "agent-1",
		RemoteFS:  "/var/jenkins",
		Labels:    "linux docker",
		Exclusive: true,
		Launcher:  LauncherSSH,
		LauncherParams: map[string]string{
			"host": "agent-1.internal",
			"port": "22",
		},
	})
	if err != nil {
		t.Fatalf("NodeForm() error = %v", err)
	}
	if form.Get("name") != "agent-1" {
		t.Errorf("name = %q", form.Get("name"))
	}

	var body map[string]interface{}
	if err := json.Unmarshal([]byte(form.Get("json")), &body); err != nil {
		t.Fatalf("json field is not valid JSON: %v", err)
	}
	if body["mode"] != "EXCLUSIVE" {
		t.Errorf("mode = %v, want EXCLUSIVE", body["mode"])
	}
	if body["numExecutors"].(float64) != 1 {
		t.Errorf("numExecutors = %v, want 1 default", body["numExecutors"])
	}
	launcher := body["launcher"].(map[string]interface{})
	if launcher["stapler-class"] != "hudson.plugins.sshslaves.SSHLauncher" {
		t.Errorf("launcher stapler-class = %v", launcher["stapler-class"])
	}
	if launcher["host"] != "agent-1.internal" {
		t.Errorf("launcher host = %v", launcher["host"])
	}
}

func TestNodeFormUnsupportedLauncher(t *testing.T) {
	_, err := NodeForm(NodeSpec{Name: "x", RemoteFS: "/tmp", Launcher: "kubernetes"})
	if !errors.Is(err, ErrUnsupportedKind) {
		t.Errorf("NodeForm() error = %v, want %v", err, ErrUnsupportedKind)
	}
}

func TestPluginInstallXML(t *testing.T) {
	tests := []struct {
		name    string
		plugin  string
		version string
		want    string
	}{
		{name: "latest", plugin: "git", version: "", want: "git"},
		{name: "pinned", plugin: "git", version: "5.2.0", want: "git@5.2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := PluginInstallXML(tt.plugin, tt.version)
			if err != nil {
				t.Fatalf("PluginInstallXML() error = %v", err)
			}

			var parsed struct {
				Install struct {
					Plugin string `xml:"plugin,attr"`
				} `xml:"install"`
			}
			if err := xml.Unmarshal(doc, &parsed); err != nil {
				t.Fatalf("PluginInstallXML() produced malformed XML: %v", err)
			}
			if parsed.Install.Plugin != tt.want {
				t.Errorf("plugin attr = %q, want %q", parsed.Install.Plugin, tt.want)
			}
		})
	}
}

func TestDeterministicOutput(t *testing.T) {
	a, err := FolderXML("same input")
	if err != nil {
		t.Fatal(err)
	}
	b, err := FolderXML("same input")
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("FolderXML() is not deterministic for identical input")
	}
}

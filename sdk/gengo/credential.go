package gengo

const (
	ProductionURL = "https://api.gengo.com/v2/"
	SandboxURL    = "http://api.sandbox.gengo.com/v2/"
)

// Credential identifies an account. The zero value is not usable.
type Credential struct {
	PublicKey  string
	PrivateKey string
	Sandbox    bool
}

func NewCredential(publicKey, privateKey string, sandbox bool) Credential {
	return Credential{PublicKey: publicKey, PrivateKey: privateKey, Sandbox: sandbox}
}

// BaseURL returns the API root selected by the sandbox flag.
func (c Credential) BaseURL() string {
	if c.Sandbox {
		return SandboxURL
	}
	return ProductionURL
}

package desensitize

const mask = "******"

var (
	// EmailRule user@example.com -> u***r@e***.com
	EmailRule = must(NewContentRule(
		"email",
		`\b([A-Za-z0-9])[A-Za-z0-9._%+-]*([A-Za-z0-9])@([A-Za-z0-9])[A-Za-z0-9.-]*\.([A-Za-z]{2,})\b`,
		"$1***$2@$3***.$4",
	))

	// APIKeyRule JSON 中的 api_key 字段
	APIKeyRule = must(NewFieldRule("api_key", "api_key", `.+`, mask))

	// APIKeyQueryRule 查询串或表单中的 api_key 参数
	APIKeyQueryRule = must(NewParamRule("api_key_query", "api_key", mask))

	// EmailQueryRule 查询串中的 email 参数，URL 编码后 EmailRule 匹配不到
	EmailQueryRule = must(NewParamRule("email_query", "email", "***"))

	PasswordRule = must(NewFieldRule("password", "password", `.+`, mask))
	TokenRule    = must(NewFieldRule("token", "token", `.+`, mask))
	SecretRule   = must(NewFieldRule("secret", "secret", `.+`, mask))
)

// CredentialRules 返回 API 凭据相关的规则
func CredentialRules() []Rule {
	return []Rule{APIKeyRule, APIKeyQueryRule, EmailQueryRule, EmailRule}
}

// BuiltinRules 返回所有内置规则
func BuiltinRules() []Rule {
	return append(CredentialRules(), PasswordRule, TokenRule, SecretRule)
}

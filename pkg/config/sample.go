package config

// Sample is an annotated configuration file printed by `things-diff sampleconf`.
const Sample = `# ----------------------------------------------------------------
# things-diff config file
#
# $ mkdir ~/.things-diff
# $ things-diff sampleconf > ~/.things-diff/config.yml
# ----------------------------------------------------------------

# Create a token with the repo scope.
# https://github.com/settings/tokens/new
# THINGS_DIFF_TOKEN overrides this value.
token: xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx

# The relative path is based on the config file.
data_file: data.yml

# Issues assigned to this user are fetched.
# Defaults to the owner of the token.
user: assignee-user-name

# Command printing one task per line.
task_command: things.sh all

projects:
  - name: repos/path
    milestones:
      exclude:
        - Icebox
        - Backlog

  - name: repos/path2
  - name: repos/path3
`

// Command sparkpress converts YouTube videos into publish-ready Markdown
// blog posts: transcript in, front-mattered document out.
package main
